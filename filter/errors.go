package filter

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrTypeMismatch is returned by NewCondition when the value or operator does
// not fit the declared column type.
var ErrTypeMismatch = errors.New("value does not match column type")

// InvalidValueError is returned when filter text can't be parsed into the
// declared type of its column. Callers may fall back to a Text condition (see
// WithTextFallback) or abort.
type InvalidValueError struct {
	Column string
	Type   ColumnType
	Value  string
	Err    error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for column %s (%s): %q", e.Column, e.Type, e.Value)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

type ColumnNotAllowedError struct {
	Column string
}

func (e ColumnNotAllowedError) Error() string {
	return fmt.Sprintf("column not allowed: %s", e.Column)
}
