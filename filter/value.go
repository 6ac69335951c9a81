package filter

import "github.com/google/uuid"

// Value is the typed right-hand side of a Condition. Null checks carry no
// value (nil).
type Value interface {
	value()
}

// Int is the value of SmallInt, Integer and BigInt conditions.
type Int int64

// Float is the value of Real and DoublePrecision conditions.
type Float float64

// String is the value of text and other quoted-literal conditions.
type String string

// Bool is the value of Boolean conditions.
type Bool bool

// List is the value of IN/NOT IN conditions and of array conditions. Set
// members are kept as text whatever the column type.
type List []string

// UUID is the value of Uuid conditions.
type UUID uuid.UUID

func (Int) value()    {}
func (Float) value()  {}
func (String) value() {}
func (Bool) value()   {}
func (List) value()   {}
func (UUID) value()   {}

// DateValue is the value of Timestamp and TimestampTz conditions: one of
// Exact, OnDate, Between or Relative.
type DateValue interface {
	Value
	dateValue()
}

// Exact compares the column with a single timestamp using the condition's
// comparison operator.
type Exact struct {
	Timestamp string
}

// OnDate matches every timestamp within one calendar day.
type OnDate struct {
	Date string
}

// Between matches timestamps in the inclusive range Start..End.
type Between struct {
	Start string
	End   string
}

// Relative matches timestamps after a raw SQL expression such as
// `now() - interval '7 days'`. The expression is inlined as-is.
type Relative struct {
	Expr string
}

func (Exact) value()    {}
func (OnDate) value()   {}
func (Between) value()  {}
func (Relative) value() {}

func (Exact) dateValue()    {}
func (OnDate) dateValue()   {}
func (Between) dateValue()  {}
func (Relative) dateValue() {}
