package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Entry is one filter declaration of a request payload. Connector joins the
// entry to the previous one and defaults to AND.
//
// In JSON, value may be any scalar, or an array of scalars which is joined
// with commas (handy for IN and OVERLAPS).
type Entry struct {
	Column    string `json:"column"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
	Connector string `json:"connector,omitempty"`
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Column    string `json:"column"`
		Operator  string `json:"operator"`
		Value     any    `json:"value"`
		Connector string `json:"connector"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch {
	case isScalar(raw.Value):
		e.Value = scalarText(raw.Value)
	case isScalarSlice(raw.Value):
		values := raw.Value.([]any)
		members := make([]string, len(values))
		for i, v := range values {
			members[i] = scalarText(v)
		}
		e.Value = strings.Join(members, ",")
	default:
		return fmt.Errorf("invalid value for column %s (must be a primitive or an array of primitives): %v", raw.Column, raw.Value)
	}
	e.Column = raw.Column
	e.Operator = raw.Operator
	e.Connector = raw.Connector
	return nil
}

// Converter compiles flat filter payloads into WHERE clauses. The zero value
// is ready to use: case-insensitive, all columns allowed, every column Text.
type Converter struct {
	registry          Registry
	caseSensitive     bool
	textFallback      bool
	allowedColumns    []string
	disallowedColumns []string
	logger            *zap.Logger
}

// NewConverter creates a new Converter configured by options.
func NewConverter(options ...Option) *Converter {
	converter := &Converter{}
	for _, option := range options {
		if option.f != nil {
			option.f(converter)
		}
	}
	return converter
}

// CaseInsensitive reports whether text comparisons are folded.
func (c *Converter) CaseInsensitive() bool {
	return !c.caseSensitive
}

// Convert converts a JSON array of entries into a WHERE clause: " WHERE ..."
// or "" when there is nothing to filter on. An empty payload is an empty
// filter.
func (c *Converter) Convert(payload []byte) (string, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return "", nil
	}

	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return "", errors.Wrap(err, "failed to parse filter payload")
	}
	return c.ConvertEntries(entries)
}

// ConvertEntries is Convert for entries that are already decoded.
func (c *Converter) ConvertEntries(entries []Entry) (string, error) {
	expr, err := c.Expression(entries)
	if err != nil {
		return "", err
	}
	return Where(expr, c.CaseInsensitive()), nil
}

// Expression synthesizes every entry and regroups them into an Expression
// tree. It returns nil for an empty list. Nothing is returned unless all
// entries convert.
func (c *Converter) Expression(entries []Entry) (Expression, error) {
	clauses := make([]Clause, 0, len(entries))
	for i, entry := range entries {
		cond, err := c.condition(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "filter entry %d", i)
		}
		clauses = append(clauses, Clause{
			Condition: cond,
			Connector: ParseConnector(entry.Connector),
		})
	}
	return BuildExpression(clauses), nil
}

func (c *Converter) condition(entry Entry) (Condition, error) {
	if !c.isColumnAllowed(entry.Column) {
		return Condition{}, ColumnNotAllowedError{Column: entry.Column}
	}

	op, ok := ParseOperator(entry.Operator)
	if !ok {
		c.log().Debug("unknown operator, comparing with =",
			zap.String("column", entry.Column),
			zap.String("operator", entry.Operator))
	}
	declared := c.registry.Lookup(entry.Column)
	typ := resolveType(op, declared)
	if typ != declared {
		c.log().Debug("operator does not apply to column type, comparing as text",
			zap.String("column", entry.Column),
			zap.Stringer("type", declared),
			zap.String("operator", string(op)))
	}

	cond, err := synthesize(entry.Column, op, entry.Value, typ)
	var invalid *InvalidValueError
	if c.textFallback && errors.As(err, &invalid) {
		c.log().Debug("invalid value, comparing as text",
			zap.String("column", entry.Column),
			zap.Stringer("type", invalid.Type),
			zap.String("value", entry.Value))
		return synthesize(entry.Column, op, entry.Value, Text)
	}
	return cond, err
}

func (c *Converter) isColumnAllowed(column string) bool {
	if slices.Contains(c.disallowedColumns, column) {
		return false
	}
	if len(c.allowedColumns) == 0 {
		return true
	}
	return slices.Contains(c.allowedColumns, column)
}

func (c *Converter) log() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}
