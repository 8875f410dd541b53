package analysis

import "sort"

// CategoryCount is one level of a categorical column and its frequency.
type CategoryCount struct {
	Value string
	Count int
}

// CategoricalSummary describes a non-numeric column.
type CategoricalSummary struct {
	Variable string
	Kind     Kind
	Total    int
	Missing  int
	Unique   int
	Top      []CategoryCount
}

const topCategories = 10

// SummarizeCategorical counts the levels of a Boolean or Categorical column
// and keeps the ten most frequent.
func SummarizeCategorical(col *TypedColumn) CategoricalSummary {
	counts := make(map[string]int)
	for _, v := range col.Values {
		if v != nil {
			counts[v.String()]++
		}
	}
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > topCategories {
		tops = tops[:topCategories]
	}
	return CategoricalSummary{
		Variable: col.Name,
		Kind:     col.Kind,
		Total:    col.Len(),
		Missing:  col.Missing,
		Unique:   len(counts),
		Top:      tops,
	}
}
