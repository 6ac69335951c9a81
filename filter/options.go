package filter

import "go.uber.org/zap"

type Option struct {
	f func(*Converter)
}

// WithColumnTypes is the option to declare the column types used to parse and
// render filter values. Columns missing from the registry are treated as Text.
func WithColumnTypes(registry Registry) Option {
	return Option{
		f: func(c *Converter) {
			c.registry = registry
		},
	}
}

// WithCaseSensitive is an option to compare text columns as-is. By default
// comparisons on Text, Varchar and Char columns are wrapped in LOWER().
func WithCaseSensitive() Option {
	return Option{
		f: func(c *Converter) {
			c.caseSensitive = true
		},
	}
}

// WithTextFallback is an option to compare a value as text when it can't be
// parsed into the declared type of its column, instead of failing the whole
// filter with an *InvalidValueError.
func WithTextFallback() Option {
	return Option{
		f: func(c *Converter) {
			c.textFallback = true
		},
	}
}

// WithAllowAllColumns is the option to allow all columns in the filter. This
// is the default, it resets earlier WithAllowColumns options.
func WithAllowAllColumns() Option {
	return Option{
		f: func(c *Converter) {
			c.allowedColumns = nil
		},
	}
}

// WithAllowColumns is an option to allow only the specified columns in the
// filter.
func WithAllowColumns(columns ...string) Option {
	return Option{
		f: func(c *Converter) {
			c.allowedColumns = append(c.allowedColumns, columns...)
		},
	}
}

// WithDisallowColumns is an option to disallow the specified columns in the
// filter. It takes precedence over WithAllowColumns.
func WithDisallowColumns(columns ...string) Option {
	return Option{
		f: func(c *Converter) {
			c.disallowedColumns = append(c.disallowedColumns, columns...)
		},
	}
}

// WithLogger is an option to log the lenient decisions taken while converting
// (unknown operators, text fallbacks) at debug level.
func WithLogger(logger *zap.Logger) Option {
	return Option{
		f: func(c *Converter) {
			c.logger = logger
		},
	}
}
