package cli

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/kingsleyh/pg-filters/filter"
)

// LoadColumns reads a YAML mapping of column names to PostgreSQL type names:
//
//	age: integer
//	created_at: timestamptz
//	tags: "text[]"
func LoadColumns(path string) (filter.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read columns file")
	}
	registry := filter.Registry{}
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, errors.Wrapf(err, "parse columns file %s", path)
	}
	return registry, nil
}

// readPayload reads the payload file named by args, or stdin for "-" or no
// argument.
func readPayload(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "read payload")
	}
	data, err := os.ReadFile(args[0])
	return data, errors.Wrap(err, "read payload")
}

// newLogger returns a development logger on w when verbose is set and a no-op
// logger otherwise.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core, zap.Development())
}

// newConverter builds the Converter described by the global flags.
func newConverter(opts *RootOptions, cmd *cobra.Command) (*filter.Converter, error) {
	options := []filter.Option{
		filter.WithLogger(newLogger(opts.Verbose, cmd.ErrOrStderr())),
	}
	if opts.Columns != "" {
		registry, err := LoadColumns(opts.Columns)
		if err != nil {
			return nil, err
		}
		options = append(options, filter.WithColumnTypes(registry))
	}
	if opts.CaseSensitive {
		options = append(options, filter.WithCaseSensitive())
	}
	if opts.TextFallback {
		options = append(options, filter.WithTextFallback())
	}
	return filter.NewConverter(options...), nil
}

// check parses the generated SQL when --check is set.
func check(opts *RootOptions, f *OutputFormatter, validate func(string) error, sql string) error {
	if !opts.Check {
		return nil
	}
	if err := validate(sql); err != nil {
		return f.Fail(ExitFailure, ErrCodeCheck, err)
	}
	return nil
}
