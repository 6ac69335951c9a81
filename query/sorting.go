package query

import (
	"sort"
	"strings"
)

type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// ParseSortOrder matches "asc"/"desc" case-insensitively; anything else is Asc.
func ParseSortOrder(order string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(order), string(Desc)) {
		return Desc
	}
	return Asc
}

type SortedColumn struct {
	Column string
	Order  SortOrder
}

func NewSortedColumn(column, order string) SortedColumn {
	return SortedColumn{Column: column, Order: ParseSortOrder(order)}
}

// Sorting is the normalized ORDER BY clause: columns ordered by name, each
// column at most once (the first occurrence wins).
type Sorting struct {
	Columns []SortedColumn
	SQL     string
}

func NewSorting(columns []SortedColumn) Sorting {
	sorted := make([]SortedColumn, len(columns))
	copy(sorted, columns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Column < sorted[j].Column
	})

	var unique []SortedColumn
	for _, column := range sorted {
		if n := len(unique); n > 0 && unique[n-1].Column == column.Column {
			continue
		}
		unique = append(unique, column)
	}

	if len(unique) == 0 {
		return Sorting{}
	}
	parts := make([]string, len(unique))
	for i, column := range unique {
		order := column.Order
		if order != Desc {
			order = Asc
		}
		parts[i] = column.Column + " " + string(order)
	}
	return Sorting{
		Columns: unique,
		SQL:     " ORDER BY " + strings.Join(parts, ", "),
	}
}
