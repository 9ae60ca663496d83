package query

// Operator is one of the six comparison operators a predicate can apply
// to a column. The set is closed.
type Operator int

const (
	Equals Operator = iota
	NotEquals
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
)

func (op Operator) String() string {
	switch op {
	case Equals:
		return "="
	case NotEquals:
		return "!="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	}
	return "?"
}

// ParseOperator maps the text form of an operator to its value.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "=", "==":
		return Equals, true
	case "!=", "<>":
		return NotEquals, true
	case ">":
		return GreaterThan, true
	case ">=":
		return GreaterThanOrEqual, true
	case "<":
		return LessThan, true
	case "<=":
		return LessThanOrEqual, true
	}
	return 0, false
}

// Holds reports whether the operator is satisfied by a three-way
// comparison result (-1, 0, or 1 for less, equal, greater).
func (op Operator) Holds(cmp int) bool {
	switch op {
	case Equals:
		return cmp == 0
	case NotEquals:
		return cmp != 0
	case GreaterThan:
		return cmp > 0
	case GreaterThanOrEqual:
		return cmp >= 0
	case LessThan:
		return cmp < 0
	case LessThanOrEqual:
		return cmp <= 0
	}
	return false
}
