package filter

import "strings"

// Operator is the comparison a Condition applies to its column.
type Operator string

const (
	Equal              Operator = "="
	NotEqual           Operator = "!="
	GreaterThan        Operator = ">"
	GreaterThanOrEqual Operator = ">="
	LessThan           Operator = "<"
	LessThanOrEqual    Operator = "<="

	Like       Operator = "LIKE"
	NotLike    Operator = "NOT LIKE"
	StartsWith Operator = "STARTS WITH"
	EndsWith   Operator = "ENDS WITH"

	In    Operator = "IN"
	NotIn Operator = "NOT IN"

	IsNull    Operator = "IS NULL"
	IsNotNull Operator = "IS NOT NULL"

	Contains Operator = "CONTAINS"
	Overlaps Operator = "OVERLAPS"

	DateOnly     Operator = "DATE_ONLY"
	DateRange    Operator = "DATE_RANGE"
	DateRelative Operator = "RELATIVE"
)

// OperatorMap resolves normalized operator text (upper case, single spaces,
// underscores read as spaces) to an Operator.
var OperatorMap = map[string]Operator{
	"=":           Equal,
	"!=":          NotEqual,
	"<>":          NotEqual,
	">":           GreaterThan,
	">=":          GreaterThanOrEqual,
	"<":           LessThan,
	"<=":          LessThanOrEqual,
	"LIKE":        Like,
	"NOT LIKE":    NotLike,
	"STARTS WITH": StartsWith,
	"ENDS WITH":   EndsWith,
	"IN":          In,
	"NOT IN":      NotIn,
	"IS NULL":     IsNull,
	"IS NOT NULL": IsNotNull,
	"CONTAINS":    Contains,
	"OVERLAPS":    Overlaps,
	"DATE ONLY":   DateOnly,
	"DATE RANGE":  DateRange,
	"RELATIVE":    DateRelative,
}

// ParseOperator matches operator text case-insensitively. Unknown text
// resolves to Equal with ok set to false.
func ParseOperator(text string) (op Operator, ok bool) {
	normalized := strings.ToUpper(strings.ReplaceAll(text, "_", " "))
	normalized = strings.Join(strings.Fields(normalized), " ")
	if op, ok := OperatorMap[normalized]; ok {
		return op, true
	}
	return Equal, false
}

func (o Operator) isComparison() bool {
	switch o {
	case Equal, NotEqual, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
		return true
	}
	return false
}

func (o Operator) isPattern() bool {
	return o == Like || o == NotLike || o == StartsWith || o == EndsWith
}

func (o Operator) isSet() bool {
	return o == In || o == NotIn
}

func (o Operator) isNullCheck() bool {
	return o == IsNull || o == IsNotNull
}

func (o Operator) isArray() bool {
	return o == Contains || o == Overlaps
}

func (o Operator) isDate() bool {
	return o == DateOnly || o == DateRange || o == DateRelative
}

// LogicalOperator joins the children of a Group. On a flat filter entry it is
// the connector to the previous entry.
type LogicalOperator string

const (
	And LogicalOperator = "AND"
	Or  LogicalOperator = "OR"
)

// ParseConnector matches "and"/"or" case-insensitively. Anything else,
// including the empty string, is And.
func ParseConnector(text string) LogicalOperator {
	if strings.EqualFold(strings.TrimSpace(text), string(Or)) {
		return Or
	}
	return And
}
