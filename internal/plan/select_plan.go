package plan

import (
	"github.com/robindb/robindb/internal/query"
	"github.com/robindb/robindb/internal/record"
	"github.com/robindb/robindb/internal/scan"
)

var _ Plan = (*SelectPlan)(nil)

// SelectPlan filters its child by a predicate. Its cardinality shrinks by
// the predicate's estimated selectivity; its cost is the child's, since
// filtering reads the same pages.
type SelectPlan struct {
	child Plan
	pred  *query.Predicate
}

// NewSelectPlan creates a selection over the child plan.
func NewSelectPlan(child Plan, pred *query.Predicate) *SelectPlan {
	return &SelectPlan{child: child, pred: pred}
}

func (p *SelectPlan) Open() (scan.Scan, error) {
	s, err := p.child.Open()
	if err != nil {
		return nil, err
	}
	return scan.NewSelectScan(s, p.pred), nil
}

func (p *SelectPlan) Cost() float64 {
	return p.child.Cost()
}

func (p *SelectPlan) Cardinality() int {
	return int(p.pred.Selectivity(p.child) * float64(p.child.Cardinality()))
}

// DistinctValues returns 1 for a column the predicate pins to a constant,
// and the child's estimate otherwise.
func (p *SelectPlan) DistinctValues(column string) int {
	if _, ok := p.pred.EquatesWithConstant(column); ok {
		return 1
	}
	return p.child.DistinctValues(column)
}

func (p *SelectPlan) EstimateSelectivity(column string, op query.Operator, value query.Constant) float64 {
	return p.child.EstimateSelectivity(column, op, value)
}

func (p *SelectPlan) Schema() *record.Schema {
	return p.child.Schema()
}
