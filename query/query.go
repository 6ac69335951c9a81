package query

import (
	"github.com/cockroachdb/errors"

	"github.com/kingsleyh/pg-filters/filter"
)

// Query holds the compiled parts of a listing query.
type Query struct {
	where    string
	sorting  *Sorting
	paginate *Paginate
}

type Option func(*Query) error

// WithWhere uses an already compiled WHERE fragment (" WHERE ..." or "").
func WithWhere(where string) Option {
	return func(q *Query) error {
		q.where = where
		return nil
	}
}

// WithExpression compiles expr as the WHERE clause.
func WithExpression(expr filter.Expression, caseInsensitive bool) Option {
	return func(q *Query) error {
		q.where = filter.Where(expr, caseInsensitive)
		return nil
	}
}

// WithFilter converts a JSON filter payload with c.
func WithFilter(c *filter.Converter, payload []byte) Option {
	return func(q *Query) error {
		where, err := c.Convert(payload)
		if err != nil {
			return errors.Wrap(err, "filter")
		}
		q.where = where
		return nil
	}
}

// WithEntries converts decoded filter entries with c.
func WithEntries(c *filter.Converter, entries []filter.Entry) Option {
	return func(q *Query) error {
		where, err := c.ConvertEntries(entries)
		if err != nil {
			return errors.Wrap(err, "filter")
		}
		q.where = where
		return nil
	}
}

func WithSorting(columns ...SortedColumn) Option {
	return func(q *Query) error {
		s := NewSorting(columns)
		q.sorting = &s
		return nil
	}
}

func WithPagination(o Options) Option {
	return func(q *Query) error {
		p := NewPaginate(o)
		q.paginate = &p
		return nil
	}
}

// New builds a Query. Nothing is returned if any option fails.
func New(options ...Option) (*Query, error) {
	q := &Query{}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// Where returns the WHERE fragment, " WHERE ..." or "".
func (q *Query) Where() string {
	return q.where
}

// Pagination returns the settled page, nil without WithPagination.
func (q *Query) Pagination() *Pagination {
	if q.paginate == nil {
		return nil
	}
	p := q.paginate.Pagination
	return &p
}

// SQL concatenates the WHERE, ORDER BY and LIMIT/OFFSET fragments in that
// order. Every fragment carries its own leading space.
func (q *Query) SQL() string {
	sql := q.where
	if q.sorting != nil {
		sql += q.sorting.SQL
	}
	if q.paginate != nil {
		sql += q.paginate.SQL
	}
	return sql
}

// CountSQL counts the rows matching the WHERE clause of q, ignoring sorting
// and pagination.
func (q *Query) CountSQL(schema, table string) string {
	return "SELECT COUNT(*) FROM " + schema + "." + table + q.where
}
