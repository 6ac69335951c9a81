package cli

import (
	"github.com/spf13/cobra"

	"github.com/kingsleyh/pg-filters/filter"
)

// NewTypesCommand creates the types command.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the column types accepted in a columns file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return f.Success(map[string][]string{"types": filter.ColumnTypeNames}, filter.ColumnTypeNames...)
		},
	}
}
