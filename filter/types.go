package filter

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ColumnType is the declared semantic type of a column. It drives how filter
// values are parsed and rendered.
type ColumnType int

const (
	Text ColumnType = iota
	Varchar
	Char
	SmallInt
	Integer
	BigInt
	Real
	DoublePrecision
	Boolean
	Date
	Time
	TimeTz
	Timestamp
	TimestampTz
	Interval
	Inet
	Cidr
	MacAddr
	MacAddr8
	Uuid
	Json
	Jsonb
	TextArray
	ByteA
	Money
	Xml
)

// ColumnTypeNames holds the canonical PostgreSQL name of every ColumnType, in
// declaration order.
var ColumnTypeNames = []string{
	Text:            "text",
	Varchar:         "varchar",
	Char:            "char",
	SmallInt:        "smallint",
	Integer:         "integer",
	BigInt:          "bigint",
	Real:            "real",
	DoublePrecision: "double precision",
	Boolean:         "boolean",
	Date:            "date",
	Time:            "time",
	TimeTz:          "timetz",
	Timestamp:       "timestamp",
	TimestampTz:     "timestamptz",
	Interval:        "interval",
	Inet:            "inet",
	Cidr:            "cidr",
	MacAddr:         "macaddr",
	MacAddr8:        "macaddr8",
	Uuid:            "uuid",
	Json:            "json",
	Jsonb:           "jsonb",
	TextArray:       "text[]",
	ByteA:           "bytea",
	Money:           "money",
	Xml:             "xml",
}

var columnTypeAliases = map[string]ColumnType{
	"character varying":           Varchar,
	"character":                   Char,
	"bpchar":                      Char,
	"int2":                        SmallInt,
	"int":                         Integer,
	"int4":                        Integer,
	"int8":                        BigInt,
	"float4":                      Real,
	"float8":                      DoublePrecision,
	"float":                       DoublePrecision,
	"bool":                        Boolean,
	"time without time zone":      Time,
	"time with time zone":         TimeTz,
	"timestamp without time zone": Timestamp,
	"timestamp with time zone":    TimestampTz,
	"_text":                       TextArray,
}

// ColumnTypes lists every ColumnType in declaration order.
func ColumnTypes() []ColumnType {
	types := make([]ColumnType, len(ColumnTypeNames))
	for i := range ColumnTypeNames {
		types[i] = ColumnType(i)
	}
	return types
}

// ParseColumnType resolves a PostgreSQL type name (or one of its common
// aliases) case-insensitively.
func ParseColumnType(name string) (ColumnType, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), " "))
	for i, n := range ColumnTypeNames {
		if n == normalized {
			return ColumnType(i), nil
		}
	}
	if t, ok := columnTypeAliases[normalized]; ok {
		return t, nil
	}
	return Text, errors.Newf("unknown column type: %q", name)
}

func (t ColumnType) String() string {
	if t < 0 || int(t) >= len(ColumnTypeNames) {
		return "ColumnType(" + strconv.Itoa(int(t)) + ")"
	}
	return ColumnTypeNames[t]
}

func (t ColumnType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(ColumnTypeNames) {
		return nil, errors.Newf("unknown column type: %d", int(t))
	}
	return []byte(ColumnTypeNames[t]), nil
}

func (t *ColumnType) UnmarshalText(text []byte) error {
	parsed, err := ParseColumnType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ColumnType) isText() bool {
	return t == Text || t == Varchar || t == Char
}

func (t ColumnType) isTimestamp() bool {
	return t == Timestamp || t == TimestampTz
}

// intBits returns the bit size of the integer types, 0 for everything else.
func (t ColumnType) intBits() int {
	switch t {
	case SmallInt:
		return 16
	case Integer:
		return 32
	case BigInt:
		return 64
	}
	return 0
}

// floatBits returns the bit size of the floating point types, 0 for
// everything else.
func (t ColumnType) floatBits() int {
	switch t {
	case Real:
		return 32
	case DoublePrecision:
		return 64
	}
	return 0
}

// Registry maps column names to their declared types. It is owned by the
// caller and only read while compiling.
type Registry map[string]ColumnType

// Lookup returns the declared type of column, Text when it is not registered.
func (r Registry) Lookup(column string) ColumnType {
	if t, ok := r[column]; ok {
		return t
	}
	return Text
}
