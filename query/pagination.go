package query

import "fmt"

// Pagination describes the page a Paginate settled on.
type Pagination struct {
	CurrentPage  int64
	PreviousPage int64
	NextPage     int64
	TotalPages   int64
	PerPage      int64
	TotalRecords int64
}

// Options is the raw pagination request. TotalRecords has to be counted by the
// caller, see Query.CountSQL.
type Options struct {
	CurrentPage  int64
	PerPage      int64
	PerPageLimit int64
	TotalRecords int64
}

type Paginate struct {
	Pagination Pagination
	SQL        string
}

// NewPaginate clamps the request: PerPage to [1, PerPageLimit] and the current
// page to the pages that exist (page 1 when there are none).
func NewPaginate(o Options) Paginate {
	perPage := o.PerPage
	if o.PerPageLimit > 0 && perPage > o.PerPageLimit {
		perPage = o.PerPageLimit
	}
	if perPage < 1 {
		perPage = 1
	}

	var totalPages int64
	if o.TotalRecords > 0 {
		totalPages = (o.TotalRecords + perPage - 1) / perPage
	}

	current := o.CurrentPage
	if current > totalPages {
		current = totalPages
	}
	if current < 1 {
		current = 1
	}

	previous := current - 1
	if previous < 1 {
		previous = 1
	}
	next := current + 1
	if next > totalPages {
		next = max(totalPages, 1)
	}

	offset := (current - 1) * perPage
	return Paginate{
		Pagination: Pagination{
			CurrentPage:  current,
			PreviousPage: previous,
			NextPage:     next,
			TotalPages:   totalPages,
			PerPage:      perPage,
			TotalRecords: o.TotalRecords,
		},
		SQL: fmt.Sprintf(" LIMIT %d OFFSET %d", perPage, offset),
	}
}
