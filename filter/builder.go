package filter

// Clause is one entry of a flat filter list: a condition and the connector
// joining it to the previous entry.
type Clause struct {
	Condition Condition
	Connector LogicalOperator
}

// BuildExpression regroups a flat, connector-tagged list into an Expression
// tree. A run of OR-connected clauses binds tighter than the AND chain around
// it and becomes one OR group where the run began:
//
//	a, b AND, c OR, d OR    =>  a AND (b OR c OR d)
//	a, b OR, c AND          =>  (a OR b) AND c
//
// The connector of the first clause is ignored. An empty list returns nil.
func BuildExpression(clauses []Clause) Expression {
	if len(clauses) == 0 {
		return nil
	}

	result := []Expression{clauses[0].Condition}
	var buffer []Expression
	open := false

	closeBuffer := func() {
		result = append(result, Group{Operator: Or, Children: buffer})
		buffer = nil
		open = false
	}

	for _, clause := range clauses[1:] {
		switch clause.Connector {
		case Or:
			if !open {
				last := len(result) - 1
				buffer = []Expression{result[last]}
				result = result[:last]
				open = true
			}
			buffer = append(buffer, clause.Condition)
		default:
			if open {
				closeBuffer()
			}
			result = append(result, clause.Condition)
		}
	}
	if open {
		closeBuffer()
	}

	if len(result) == 1 {
		return result[0]
	}
	return Group{Operator: And, Children: result}
}
