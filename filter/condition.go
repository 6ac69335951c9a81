package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Condition is a single typed predicate over one column.
//
// Build conditions with NewCondition or Synthesize, both keep Value in line
// with Type. A Condition is immutable once built and safe to render from
// multiple goroutines.
type Condition struct {
	Column   string
	Type     ColumnType
	Operator Operator
	Value    Value
}

// NewCondition builds a Condition, rejecting operator and value combinations
// that don't fit the column type. Null checks drop the value.
func NewCondition(column string, typ ColumnType, op Operator, v Value) (Condition, error) {
	c := Condition{Column: column, Type: typ, Operator: op, Value: v}
	if err := c.check(); err != nil {
		return Condition{}, errors.Wrapf(err, "condition on %s", column)
	}
	if op.isNullCheck() {
		c.Value = nil
	}
	return c, nil
}

// MustCondition is like NewCondition but panics on error.
func MustCondition(column string, typ ColumnType, op Operator, v Value) Condition {
	c, err := NewCondition(column, typ, op, v)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Condition) check() error {
	op := c.Operator
	if _, ok := OperatorMap[strings.ReplaceAll(string(op), "_", " ")]; !ok {
		return errors.Newf("unknown operator %q", string(op))
	}
	mismatch := func() error {
		return errors.Wrapf(ErrTypeMismatch, "%s %s %T", c.Type, op, c.Value)
	}

	switch {
	case op.isNullCheck():
		return nil
	case op.isSet():
		if _, ok := c.Value.(List); !ok {
			return mismatch()
		}
		return nil
	case op.isPattern() && !c.Type.isText(),
		op.isArray() != (c.Type == TextArray),
		op.isDate() && !c.Type.isTimestamp():
		return mismatch()
	}

	var ok bool
	switch {
	case c.Type.intBits() > 0:
		_, ok = c.Value.(Int)
	case c.Type.floatBits() > 0:
		_, ok = c.Value.(Float)
	case c.Type == Boolean:
		_, ok = c.Value.(Bool)
	case c.Type == Uuid:
		_, ok = c.Value.(UUID)
	case c.Type == TextArray:
		_, ok = c.Value.(List)
	case c.Type.isTimestamp():
		switch c.Value.(type) {
		case OnDate:
			ok = op == DateOnly
		case Between:
			ok = op == DateRange
		case Relative:
			ok = op == DateRelative
		case Exact:
			ok = op.isComparison()
		}
	default:
		_, ok = c.Value.(String)
	}
	if !ok {
		return mismatch()
	}
	return nil
}

func (Condition) expression() {}

// SQL renders the condition. When caseInsensitive is set, comparisons on
// Text, Varchar and Char columns wrap both sides in LOWER(); no other type is
// folded.
func (c Condition) SQL(caseInsensitive bool) string {
	switch {
	case c.Operator.isNullCheck():
		return c.Column + " " + string(c.Operator)
	case c.Operator.isSet():
		return c.setSQL(caseInsensitive)
	}

	switch c.Type {
	case Text, Varchar, Char:
		return c.textSQL(caseInsensitive)
	case SmallInt, Integer, BigInt, Real, DoublePrecision, Boolean:
		return c.Column + " " + string(c.comparison()) + " " + c.literal()
	case Timestamp, TimestampTz:
		return c.dateSQL()
	case TextArray:
		return c.arraySQL()
	case Uuid, Date, Time, TimeTz, Interval, Inet, Cidr, MacAddr, MacAddr8, Json, Jsonb, ByteA, Money, Xml:
		if c.Operator.isPattern() {
			return c.textSQL(false)
		}
		return c.Column + " " + string(c.comparison()) + " " + quote(c.text())
	}
	panic(fmt.Sprintf("filter: no rendering for column type %s", c.Type))
}

// comparison returns the operator for a plain `column op value` rendering.
func (c Condition) comparison() Operator {
	if c.Operator.isComparison() {
		return c.Operator
	}
	return Equal
}

func (c Condition) textSQL(caseInsensitive bool) string {
	op := c.Operator
	v := strings.ReplaceAll(c.text(), "'", "''")
	switch op {
	case Like, NotLike:
		v = "%" + v + "%"
	case StartsWith:
		op, v = Like, v+"%"
	case EndsWith:
		op, v = Like, "%"+v
	default:
		op = c.comparison()
	}

	left, right := c.Column, "'"+v+"'"
	if caseInsensitive {
		left, right = fold(left), fold(right)
	}
	return left + " " + string(op) + " " + right
}

func (c Condition) setSQL(caseInsensitive bool) string {
	values, ok := c.Value.(List)
	if !ok {
		values = List{c.text()}
	}
	folded := caseInsensitive && c.Type.isText()

	members := make([]string, len(values))
	for i, v := range values {
		members[i] = quote(v)
		if folded {
			members[i] = fold(members[i])
		}
	}
	column := c.Column
	if folded {
		column = fold(column)
	}
	return column + " " + string(c.Operator) + " (" + strings.Join(members, ", ") + ")"
}

func (c Condition) arraySQL() string {
	values, ok := c.Value.(List)
	if !ok {
		values = List{c.text()}
	}
	op := "@>"
	if c.Operator == Overlaps {
		op = "&&"
	}

	members := make([]string, len(values))
	for i, v := range values {
		members[i] = quote(v)
	}
	return c.Column + " " + op + " ARRAY[" + strings.Join(members, ", ") + "]::text[]"
}

func (c Condition) dateSQL() string {
	col := c.Column
	switch v := c.Value.(type) {
	case OnDate:
		day := strings.ReplaceAll(v.Date, "'", "''")
		return fmt.Sprintf("%s >= '%s 00:00:00' AND %s < ('%s')::date + interval '1 day'", col, day, col, day)
	case Between:
		return col + " BETWEEN " + quote(v.Start) + " AND " + quote(v.End)
	case Relative:
		return col + " > " + v.Expr
	}
	return col + " " + string(c.comparison()) + " " + quote(c.text())
}

// literal renders numeric and boolean values unquoted.
func (c Condition) literal() string {
	switch c.Value.(type) {
	case Int, Float, Bool:
		return c.text()
	}
	return quote(c.text())
}

// text returns the value in its textual form, unescaped.
func (c Condition) text() string {
	switch v := c.Value.(type) {
	case nil:
		return ""
	case String:
		return string(v)
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		bits := c.Type.floatBits()
		if bits == 0 {
			bits = 64
		}
		return strconv.FormatFloat(float64(v), 'f', -1, bits)
	case Bool:
		return strconv.FormatBool(bool(v))
	case UUID:
		return uuid.UUID(v).String()
	case List:
		return strings.Join(v, ",")
	case Exact:
		return v.Timestamp
	case OnDate:
		return v.Date
	case Between:
		return v.Start + "," + v.End
	case Relative:
		return v.Expr
	}
	return ""
}
