package filter_test

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kingsleyh/pg-filters/filter"
	"github.com/kingsleyh/pg-filters/internal/sqlcheck"
)

func ExampleNewConverter() {
	converter := filter.NewConverter(filter.WithColumnTypes(filter.Registry{"age": filter.Integer}))

	payload := `[
		{"column": "name", "operator": "=", "value": "John"},
		{"column": "age", "operator": ">", "value": "18", "connector": "OR"},
		{"column": "city", "operator": "=", "value": "NYC", "connector": "AND"}
	]`
	where, err := converter.Convert([]byte(payload))
	if err != nil {
		// handle error
	}

	fmt.Println("SELECT * FROM users" + where)
	// Output:
	// SELECT * FROM users WHERE ((LOWER(name) = LOWER('John') OR age > 18) AND LOWER(city) = LOWER('NYC'))
}

func TestConverter_Convert(t *testing.T) {
	tests := []struct {
		name   string
		option filter.Option
		input  string
		where  string
		err    error
	}{
		{
			"flat single value",
			filter.Option{},
			`[{"column": "name", "operator": "=", "value": "John"}]`,
			` WHERE LOWER(name) = LOWER('John')`,
			nil,
		},
		{
			"case sensitive",
			filter.WithCaseSensitive(),
			`[{"column": "name", "operator": "=", "value": "John"}]`,
			` WHERE name = 'John'`,
			nil,
		},
		{
			"and chain",
			filter.Option{},
			`[{"column": "name", "operator": "=", "value": "John"}, {"column": "age", "operator": ">", "value": "18"}]`,
			` WHERE (LOWER(name) = LOWER('John') AND age > 18)`,
			nil,
		},
		{
			"or binds tighter than and",
			filter.WithCaseSensitive(),
			`[
				{"column": "name", "operator": "=", "value": "John"},
				{"column": "age", "operator": ">", "value": "18", "connector": "OR"},
				{"column": "city", "operator": "=", "value": "NYC", "connector": "AND"}
			]`,
			` WHERE ((name = 'John' OR age > 18) AND city = 'NYC')`,
			nil,
		},
		{
			"trailing or run",
			filter.WithCaseSensitive(),
			`[
				{"column": "active", "operator": "=", "value": "true"},
				{"column": "role", "operator": "=", "value": "admin", "connector": "and"},
				{"column": "role", "operator": "=", "value": "owner", "connector": "or"},
				{"column": "age", "operator": ">=", "value": "21", "connector": "or"}
			]`,
			` WHERE (active = true AND (role = 'admin' OR role = 'owner' OR age >= 21))`,
			nil,
		},
		{
			"json number value",
			filter.Option{},
			`[{"column": "age", "operator": ">", "value": 18}]`,
			` WHERE age > 18`,
			nil,
		},
		{
			"json boolean value",
			filter.Option{},
			`[{"column": "active", "operator": "=", "value": false}]`,
			` WHERE active = false`,
			nil,
		},
		{
			"json array value for in",
			filter.Option{},
			`[{"column": "status", "operator": "in", "value": ["NEW", "OPEN"]}]`,
			` WHERE LOWER(status) IN (LOWER('NEW'), LOWER('OPEN'))`,
			nil,
		},
		{
			"in on integer column is not coerced",
			filter.Option{},
			`[{"column": "age", "operator": "IN", "value": "11,12,13"}]`,
			` WHERE age IN ('11', '12', '13')`,
			nil,
		},
		{
			"null check",
			filter.Option{},
			`[{"column": "email", "operator": "is null"}, {"column": "age", "operator": "is not null", "value": "1"}]`,
			` WHERE (email IS NULL AND age IS NOT NULL)`,
			nil,
		},
		{
			"date only",
			filter.Option{},
			`[{"column": "created_at", "operator": "DATE_ONLY", "value": "2024-12-29"}]`,
			` WHERE created_at >= '2024-12-29 00:00:00' AND created_at < ('2024-12-29')::date + interval '1 day'`,
			nil,
		},
		{
			"date range",
			filter.Option{},
			`[{"column": "created_at", "operator": "date_range", "value": ["2024-01-01", "2024-12-31"]}]`,
			` WHERE created_at BETWEEN '2024-01-01' AND '2024-12-31'`,
			nil,
		},
		{
			"array overlaps",
			filter.Option{},
			`[{"column": "tags", "operator": "overlaps", "value": "go,rust"}]`,
			` WHERE tags && ARRAY['go', 'rust']::text[]`,
			nil,
		},
		{
			"uuid",
			filter.Option{},
			`[{"column": "id", "operator": "=", "value": "550E8400-E29B-41D4-A716-446655440000"}]`,
			` WHERE id = '550e8400-e29b-41d4-a716-446655440000'`,
			nil,
		},
		{
			"quotes are escaped",
			filter.Option{},
			`[{"column": "name", "operator": "starts with", "value": "O'Bri"}]`,
			` WHERE LOWER(name) LIKE LOWER('O''Bri%')`,
			nil,
		},
		{
			"unknown operator defaults to equal",
			filter.Option{},
			`[{"column": "name", "operator": "}", "value": "John"}]`,
			` WHERE LOWER(name) = LOWER('John')`,
			nil,
		},
		{
			"unknown connector defaults to and",
			filter.Option{},
			`[{"column": "age", "operator": ">", "value": "1"}, {"column": "age", "operator": "<", "value": "9", "connector": "xor"}]`,
			` WHERE (age > 1 AND age < 9)`,
			nil,
		},
		{
			"invalid integer",
			filter.Option{},
			`[{"column": "age", "operator": "=", "value": "abc"}]`,
			``,
			fmt.Errorf(`filter entry 0: invalid value for column age (integer): "abc"`),
		},
		{
			"invalid value in a later entry",
			filter.Option{},
			`[{"column": "name", "operator": "=", "value": "John"}, {"column": "active", "operator": "=", "value": "maybe"}]`,
			``,
			fmt.Errorf(`filter entry 1: invalid value for column active (boolean): "maybe"`),
		},
		{
			"text fallback",
			filter.WithTextFallback(),
			`[{"column": "age", "operator": "=", "value": "abc"}]`,
			` WHERE LOWER(age) = LOWER('abc')`,
			nil,
		},
		{
			"allowed columns",
			filter.WithAllowColumns("name"),
			`[{"column": "age", "operator": "=", "value": "1"}]`,
			``,
			fmt.Errorf("filter entry 0: column not allowed: age"),
		},
		{
			"disallowed columns",
			filter.WithDisallowColumns("password"),
			`[{"column": "password", "operator": "=", "value": "hunter2"}]`,
			``,
			fmt.Errorf("filter entry 0: column not allowed: password"),
		},
		{
			"empty list",
			filter.Option{},
			`[]`,
			``,
			nil,
		},
		{
			"empty payload",
			filter.Option{},
			` `,
			``,
			nil,
		},
		{
			"object instead of list",
			filter.Option{},
			`{"column": "name"}`,
			``,
			fmt.Errorf("failed to parse filter payload: json: cannot unmarshal object into Go value of type []filter.Entry"),
		},
		{
			"nested object value",
			filter.Option{},
			`[{"column": "name", "operator": "=", "value": {"$gt": 1}}]`,
			``,
			fmt.Errorf("failed to parse filter payload: invalid value for column name (must be a primitive or an array of primitives): map[$gt:1]"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := filter.NewConverter(filter.WithColumnTypes(registry), tt.option)
			where, err := c.Convert([]byte(tt.input))
			if err != nil && (tt.err == nil || err.Error() != tt.err.Error()) {
				t.Errorf("Converter.Convert() error = %v, wantErr %v", err, tt.err)
				return
			}
			if err == nil && tt.err != nil {
				t.Errorf("Converter.Convert() error = nil, wantErr %v", tt.err)
				return
			}
			if where != tt.where {
				t.Errorf("Converter.Convert() where:\n%v\nwant:\n%v", where, tt.where)
			}
			if err := sqlcheck.Fragment(where); err != nil {
				t.Errorf("Converter.Convert() output does not parse: %v", err)
			}
		})
	}
}

func TestConverter_Expression(t *testing.T) {
	c := filter.NewConverter(filter.WithColumnTypes(registry))
	expr, err := c.Expression([]filter.Entry{
		{Column: "name", Operator: "=", Value: "John"},
		{Column: "age", Operator: ">", Value: "18", Connector: "OR"},
	})
	if err != nil {
		t.Fatal(err)
	}
	group, ok := expr.(filter.Group)
	if !ok || group.Operator != filter.Or || len(group.Children) != 2 {
		t.Fatalf("Converter.Expression() = %#v, want an OR group of 2", expr)
	}

	expr, err = c.Expression(nil)
	if err != nil || expr != nil {
		t.Errorf("Converter.Expression(nil) = %v, %v, want nil, nil", expr, err)
	}
}

func TestConverter_NoConstructor(t *testing.T) {
	c := &filter.Converter{}
	where, err := c.Convert([]byte(`[{"column": "age", "operator": ">", "value": "18"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if want := ` WHERE LOWER(age) > LOWER('18')`; where != want {
		t.Errorf("Converter.Convert() where = %v, want %v", where, want)
	}

	where, err = c.Convert([]byte(``))
	if err != nil {
		t.Fatal(err)
	}
	if where != "" {
		t.Errorf("Converter.Convert() where = %v, want empty", where)
	}
}

func TestConverter_AllowAllColumnsResets(t *testing.T) {
	c := filter.NewConverter(filter.WithAllowColumns("name"), filter.WithAllowAllColumns())
	if _, err := c.ConvertEntries([]filter.Entry{{Column: "age", Operator: "=", Value: "1"}}); err != nil {
		t.Errorf("Converter.ConvertEntries() error = %v", err)
	}
}

func TestConverter_WithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := filter.NewConverter(
		filter.WithColumnTypes(registry),
		filter.WithTextFallback(),
		filter.WithLogger(zap.New(core)),
	)

	_, err := c.ConvertEntries([]filter.Entry{
		{Column: "name", Operator: "~=", Value: "John"},
		{Column: "age", Operator: "like", Value: "1"},
		{Column: "active", Operator: "=", Value: "maybe"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"unknown operator, comparing with =",
		"operator does not apply to column type, comparing as text",
		"invalid value, comparing as text",
	}
	entries := logs.All()
	if len(entries) != len(want) {
		t.Fatalf("logged %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for i, entry := range entries {
		if entry.Message != want[i] {
			t.Errorf("log %d = %q, want %q", i, entry.Message, want[i])
		}
		if entry.ContextMap()["column"] == nil {
			t.Errorf("log %d has no column field", i)
		}
	}
}
