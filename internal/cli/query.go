package cli

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/kingsleyh/pg-filters/internal/sqlcheck"
	"github.com/kingsleyh/pg-filters/query"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Sort         []string // column:direction
	Page         int64
	PerPage      int64
	PerPageLimit int64
	Total        int64
	Count        bool
	Schema       string
	Table        string
}

// QueryResult is the JSON payload of the query command.
type QueryResult struct {
	SQL        string      `json:"sql"`
	Pagination *PageResult `json:"pagination,omitempty"`
}

type PageResult struct {
	CurrentPage  int64 `json:"current_page"`
	PreviousPage int64 `json:"previous_page"`
	NextPage     int64 `json:"next_page"`
	TotalPages   int64 `json:"total_pages"`
	PerPage      int64 `json:"per_page"`
	TotalRecords int64 `json:"total_records"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query [payload-file|-]",
		Short: "Print the WHERE, ORDER BY and LIMIT fragments of a listing query",
		Long: `Print the WHERE, ORDER BY and LIMIT/OFFSET fragments of a listing query.

Pagination is applied when --per-page is set; --total is the number of
matching rows, as counted by the query printed with --count.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd, args)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Sort, "sort", "s", nil, "sort column as column:asc|desc (repeatable)")
	cmd.Flags().Int64Var(&opts.Page, "page", 1, "current page")
	cmd.Flags().Int64Var(&opts.PerPage, "per-page", 0, "rows per page")
	cmd.Flags().Int64Var(&opts.PerPageLimit, "per-page-limit", 100, "upper bound of --per-page")
	cmd.Flags().Int64Var(&opts.Total, "total", 0, "total number of matching rows")
	cmd.Flags().BoolVar(&opts.Count, "count", false, "print the count query instead")
	cmd.Flags().StringVar(&opts.Schema, "schema", "public", "schema of the counted table")
	cmd.Flags().StringVar(&opts.Table, "table", "", "counted table, required with --count")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command, args []string) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if opts.Count && opts.Table == "" {
		return f.Fail(ExitCommandError, ErrCodeInput, errors.New("--count requires --table"))
	}
	converter, err := newConverter(opts.RootOptions, cmd)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeColumns, err)
	}
	payload, err := readPayload(cmd, args)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInput, err)
	}

	options := []query.Option{
		query.WithFilter(converter, payload),
		query.WithSorting(sortedColumns(opts.Sort)...),
	}
	if opts.PerPage > 0 {
		options = append(options, query.WithPagination(query.Options{
			CurrentPage:  opts.Page,
			PerPage:      opts.PerPage,
			PerPageLimit: opts.PerPageLimit,
			TotalRecords: opts.Total,
		}))
	}
	q, err := query.New(options...)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeFilter, err)
	}

	if opts.Count {
		sql := q.CountSQL(opts.Schema, opts.Table)
		if err := check(opts.RootOptions, f, sqlcheck.Statement, sql); err != nil {
			return err
		}
		return f.Success(QueryResult{SQL: sql}, sql)
	}

	sql := q.SQL()
	if err := check(opts.RootOptions, f, sqlcheck.Fragment, sql); err != nil {
		return err
	}
	result := QueryResult{SQL: sql}
	if p := q.Pagination(); p != nil {
		result.Pagination = &PageResult{
			CurrentPage:  p.CurrentPage,
			PreviousPage: p.PreviousPage,
			NextPage:     p.NextPage,
			TotalPages:   p.TotalPages,
			PerPage:      p.PerPage,
			TotalRecords: p.TotalRecords,
		}
	}
	return f.Success(result, sql)
}

// sortedColumns parses column:direction flags. A missing direction is ASC.
func sortedColumns(flags []string) []query.SortedColumn {
	columns := make([]query.SortedColumn, 0, len(flags))
	for _, flag := range flags {
		column, order, _ := strings.Cut(flag, ":")
		columns = append(columns, query.NewSortedColumn(strings.TrimSpace(column), order))
	}
	return columns
}
