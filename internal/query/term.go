package query

import (
	"fmt"

	"github.com/robindb/robindb/internal/record"
)

// Row provides value access to the current record of a scan. It is the
// part of the scan contract a term needs to evaluate itself.
type Row interface {
	GetInt(column string) (int, error)
	GetString(column string) (string, error)
	HasColumn(column string) bool
}

// Term is a single comparison "column op literal".
type Term struct {
	column string
	op     Operator
	value  Constant
}

// NewTerm creates a comparison term.
func NewTerm(column string, op Operator, value Constant) Term {
	return Term{column: column, op: op, value: value}
}

// Column returns the column the term compares.
func (t Term) Column() string {
	return t.column
}

// Op returns the term's comparison operator.
func (t Term) Op() Operator {
	return t.op
}

// Value returns the literal the column is compared against.
func (t Term) Value() Constant {
	return t.value
}

// IsSatisfied evaluates the term against the current record of r. The
// literal's variant decides which getter is used.
func (t Term) IsSatisfied(r Row) (bool, error) {
	if !r.HasColumn(t.column) {
		return false, fmt.Errorf("unknown column %q", t.column)
	}
	var lhs Constant
	switch {
	case t.value.IsInt():
		v, err := r.GetInt(t.column)
		if err != nil {
			return false, err
		}
		lhs = NewIntConstant(v)
	case t.value.IsString():
		s, err := r.GetString(t.column)
		if err != nil {
			return false, err
		}
		lhs = NewStringConstant(s)
	default:
		return false, fmt.Errorf("term on %q has no literal", t.column)
	}
	return t.op.Holds(lhs.CompareTo(t.value)), nil
}

// AppliesTo reports whether the term's column exists in the schema.
func (t Term) AppliesTo(sch *record.Schema) bool {
	return sch.HasColumn(t.column)
}

func (t Term) String() string {
	return fmt.Sprintf("%s %s %s", t.column, t.op, t.value)
}
