package query

import "strings"

// SelectivityEstimator yields the estimated fraction of rows satisfying a
// single comparison. Table statistics implement it.
type SelectivityEstimator interface {
	EstimateSelectivity(column string, op Operator, value Constant) float64
}

// Predicate is a conjunction of terms.
type Predicate struct {
	terms []Term
}

// NewPredicate creates a predicate from the given terms.
func NewPredicate(terms ...Term) *Predicate {
	return &Predicate{terms: terms}
}

// Conjoin adds a term to the conjunction.
func (p *Predicate) Conjoin(t Term) {
	p.terms = append(p.terms, t)
}

// ConjoinWith adds every term of another predicate.
func (p *Predicate) ConjoinWith(other *Predicate) {
	p.terms = append(p.terms, other.terms...)
}

// IsSatisfied reports whether every term holds for the current record.
func (p *Predicate) IsSatisfied(r Row) (bool, error) {
	for _, t := range p.terms {
		ok, err := t.IsSatisfied(r)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Selectivity multiplies the per-term estimates, treating columns as
// independent.
func (p *Predicate) Selectivity(est SelectivityEstimator) float64 {
	sel := 1.0
	for _, t := range p.terms {
		sel *= est.EstimateSelectivity(t.Column(), t.Op(), t.Value())
	}
	return sel
}

// EquatesWithConstant returns the literal a column is tested for equality
// against, if any term does so.
func (p *Predicate) EquatesWithConstant(column string) (Constant, bool) {
	for _, t := range p.terms {
		if t.Column() == column && t.Op() == Equals {
			return t.Value(), true
		}
	}
	return Constant{}, false
}

// Terms returns a copy of the predicate's terms.
func (p *Predicate) Terms() []Term {
	terms := make([]Term, len(p.terms))
	copy(terms, p.terms)
	return terms
}

// IsEmpty reports whether the predicate has no terms.
func (p *Predicate) IsEmpty() bool {
	return len(p.terms) == 0
}

func (p *Predicate) String() string {
	parts := make([]string, len(p.terms))
	for i, t := range p.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " and ")
}
