package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Synthesize turns a raw (column, operator, value) triple into a typed
// Condition, using registry to find the column type (Text when missing).
//
// Parsing is permissive: unknown operator text means Equal, pattern operators
// on non-text columns and date operators on non-timestamp columns produce a
// Text condition. Values that can't be parsed into the column type return an
// *InvalidValueError.
func Synthesize(column, operator, value string, registry Registry) (Condition, error) {
	op, _ := ParseOperator(operator)
	return synthesize(column, op, value, resolveType(op, registry.Lookup(column)))
}

// resolveType returns the type a condition is built with: the declared type,
// or Text when op can't apply to it.
func resolveType(op Operator, declared ColumnType) ColumnType {
	switch {
	case op.isPattern() && !declared.isText(),
		op.isDate() && !declared.isTimestamp():
		return Text
	}
	return declared
}

func synthesize(column string, op Operator, raw string, typ ColumnType) (Condition, error) {
	c := Condition{Column: column, Type: typ, Operator: op}

	switch {
	case op.isNullCheck():
		return c, nil
	case op.isSet():
		c.Value = splitList(raw)
		return c, nil
	case typ == TextArray:
		if op == Overlaps {
			c.Value = splitList(raw)
			return c, nil
		}
		c.Operator = Contains
		c.Value = List{strings.TrimSpace(raw)}
		return c, nil
	case op.isArray():
		c.Operator = Equal
	case op.isDate() && !typ.isTimestamp():
		c.Operator = Equal
	}

	invalid := func(err error) error {
		return &InvalidValueError{Column: column, Type: typ, Value: raw, Err: err}
	}

	switch {
	case typ.intBits() > 0:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, typ.intBits())
		if err != nil {
			return Condition{}, invalid(err)
		}
		c.Value = Int(n)
	case typ.floatBits() > 0:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), typ.floatBits())
		if err != nil {
			return Condition{}, invalid(err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Condition{}, invalid(errors.New("not a finite number"))
		}
		c.Value = Float(f)
	case typ == Boolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true":
			c.Value = Bool(true)
		case "false":
			c.Value = Bool(false)
		default:
			return Condition{}, invalid(errors.New("expected true or false"))
		}
	case typ == Uuid:
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return Condition{}, invalid(err)
		}
		c.Value = UUID(id)
	case typ.isTimestamp():
		v, err := dateValue(c.Operator, strings.TrimSpace(raw))
		if err != nil {
			return Condition{}, invalid(err)
		}
		c.Value = v
	default:
		c.Value = String(raw)
	}
	return c, nil
}

func dateValue(op Operator, raw string) (DateValue, error) {
	switch op {
	case DateOnly:
		return OnDate{Date: raw}, nil
	case DateRange:
		bounds := splitList(raw)
		if len(bounds) != 2 || bounds[0] == "" || bounds[1] == "" {
			return nil, errors.New("expected start,end")
		}
		return Between{Start: bounds[0], End: bounds[1]}, nil
	case DateRelative:
		return Relative{Expr: raw}, nil
	}
	return Exact{Timestamp: raw}, nil
}
