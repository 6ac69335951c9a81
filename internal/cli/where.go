package cli

import (
	"github.com/spf13/cobra"

	"github.com/kingsleyh/pg-filters/internal/sqlcheck"
)

// WhereResult is the JSON payload of the where command.
type WhereResult struct {
	Where string `json:"where"`
}

// NewWhereCommand creates the where command.
func NewWhereCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "where [payload-file|-]",
		Short: "Print the WHERE fragment of a filter payload",
		Long: `Print the WHERE fragment of a JSON filter payload, read from a file or stdin.

The fragment starts with " WHERE " and is empty when there is nothing to
filter on, so it can be appended to a SELECT as-is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhere(rootOpts, cmd, args)
		},
	}
}

func runWhere(opts *RootOptions, cmd *cobra.Command, args []string) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	converter, err := newConverter(opts, cmd)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeColumns, err)
	}
	payload, err := readPayload(cmd, args)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInput, err)
	}
	where, err := converter.Convert(payload)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeFilter, err)
	}
	if err := check(opts, f, sqlcheck.Fragment, where); err != nil {
		return err
	}
	return f.Success(WhereResult{Where: where}, where)
}
