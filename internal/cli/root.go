// Package cli implements the pgfilter command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose       bool
	Format        string // "json" | "text"
	Columns       string // path to a column types YAML file
	CaseSensitive bool
	TextFallback  bool
	Check         bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pgfilter CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pgfilter",
		Short: "Compile filter payloads into PostgreSQL clauses",
		Long: `Compile JSON filter payloads into PostgreSQL WHERE, ORDER BY and
LIMIT/OFFSET fragments, typed by a column types file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log fallbacks to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Columns, "columns", "c", "", "column types YAML file")
	cmd.PersistentFlags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "compare text columns as-is")
	cmd.PersistentFlags().BoolVar(&opts.TextFallback, "text-fallback", false, "compare unparsable values as text")
	cmd.PersistentFlags().BoolVar(&opts.Check, "check", false, "parse the generated SQL before printing it")

	cmd.AddCommand(NewWhereCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewTypesCommand(opts))

	return cmd
}
