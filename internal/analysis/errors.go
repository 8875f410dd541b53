package analysis

import (
	"fmt"
	"strings"
)

// SchemaError reports a requested variable that the table does not have.
type SchemaError struct {
	Variable  string
	Table     string
	Available []string
}

func (e *SchemaError) Error() string {
	where := ""
	if e.Table != "" {
		where = fmt.Sprintf(" in %s", e.Table)
	}
	if len(e.Available) == 0 {
		return fmt.Sprintf("variable %q not found%s", e.Variable, where)
	}
	return fmt.Sprintf("variable %q not found%s (available: %s)", e.Variable, where, strings.Join(e.Available, ", "))
}

// TypeMismatchError reports a numeric-only operation requested on a
// non-numeric column.
type TypeMismatchError struct {
	Variable  string
	Kind      Kind
	Operation string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s requires a numeric column; %q is %s", e.Operation, e.Variable, e.Kind)
}

// UnsupportedMethodError reports an unknown correlation or quantile method.
type UnsupportedMethodError struct {
	Setting string
	Value   string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.Setting, e.Value)
}
