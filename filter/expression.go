package filter

import "strings"

// Expression is a node of the predicate tree: a Condition leaf or a Group.
type Expression interface {
	// SQL renders the node, see Compile.
	SQL(caseInsensitive bool) string
	expression()
}

// Group joins its children with a logical operator.
type Group struct {
	Operator LogicalOperator
	Children []Expression
}

func (Group) expression() {}

// SQL renders each child, joins them with the group operator and wraps the
// result in one pair of parentheses. Children rendering to nothing are
// skipped; a group without output renders to "".
func (g Group) SQL(caseInsensitive bool) string {
	parts := make([]string, 0, len(g.Children))
	for _, child := range g.Children {
		if sql := Compile(child, caseInsensitive); sql != "" {
			parts = append(parts, sql)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	sep := " AND "
	if g.Operator == Or {
		sep = " OR "
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// Compile renders expr to SQL text. A nil expression compiles to "".
func Compile(expr Expression, caseInsensitive bool) string {
	if expr == nil {
		return ""
	}
	return expr.SQL(caseInsensitive)
}

// Where compiles expr and prefixes it with " WHERE ". It returns "" when there
// is nothing to filter on.
func Where(expr Expression, caseInsensitive bool) string {
	sql := Compile(expr, caseInsensitive)
	if sql == "" {
		return ""
	}
	return " WHERE " + sql
}
