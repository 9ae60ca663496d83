package plan

import (
	"github.com/robindb/robindb/internal/query"
	"github.com/robindb/robindb/internal/record"
	"github.com/robindb/robindb/internal/scan"
)

var _ Plan = (*ProjectPlan)(nil)

// ProjectPlan restricts its child to a subset of columns. Projection
// changes neither cost nor cardinality.
type ProjectPlan struct {
	child  Plan
	schema *record.Schema
}

// NewProjectPlan creates a projection of the child plan onto the named
// columns.
func NewProjectPlan(child Plan, columns []string) *ProjectPlan {
	schema := record.NewSchema()
	for _, c := range columns {
		schema.Add(c, child.Schema())
	}
	return &ProjectPlan{child: child, schema: schema}
}

func (p *ProjectPlan) Open() (scan.Scan, error) {
	s, err := p.child.Open()
	if err != nil {
		return nil, err
	}
	return scan.NewProjectScan(s, p.schema.Columns()), nil
}

func (p *ProjectPlan) Cost() float64 {
	return p.child.Cost()
}

func (p *ProjectPlan) Cardinality() int {
	return p.child.Cardinality()
}

func (p *ProjectPlan) DistinctValues(column string) int {
	return p.child.DistinctValues(column)
}

func (p *ProjectPlan) EstimateSelectivity(column string, op query.Operator, value query.Constant) float64 {
	return p.child.EstimateSelectivity(column, op, value)
}

func (p *ProjectPlan) Schema() *record.Schema {
	return p.schema
}
