package loader

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

func loadXLSX(path string, opt Options) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	// skip leading blank rows
	for len(rows) > 0 && len(rows[0]) == 0 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrEmptyInput)
	}
	name := filepath.Base(path)
	if len(f.GetSheetList()) > 1 {
		name = fmt.Sprintf("%s[%s]", name, sheet)
	}
	return shape(name, rows[0], rows[1:], opt)
}

func pickSheet(sheets []string, opt Options) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if opt.SheetName != "" {
		for _, s := range sheets {
			if s == opt.SheetName {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet %q not found (available: %v)", opt.SheetName, sheets)
	}
	if opt.SheetIndex > 0 {
		if opt.SheetIndex > len(sheets) {
			return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", opt.SheetIndex, len(sheets))
		}
		return sheets[opt.SheetIndex-1], nil
	}
	return sheets[0], nil
}
