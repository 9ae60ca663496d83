package plan

import (
	"github.com/robindb/robindb/internal/catalog"
	"github.com/robindb/robindb/internal/query"
	"github.com/robindb/robindb/internal/record"
	"github.com/robindb/robindb/internal/scan"
	"github.com/robindb/robindb/internal/stats"
)

var _ Plan = (*TablePlan)(nil)

// TablePlan is the leaf plan for a base table, costed from that table's
// published statistics.
type TablePlan struct {
	tbl *catalog.Table
	st  *stats.TableStats
}

// NewTablePlan creates a plan over a base table, computing the table's
// statistics first if none are published yet.
func NewTablePlan(tbl *catalog.Table, reg *stats.Registry) (*TablePlan, error) {
	st, err := reg.StatsFor(tbl.Name())
	if err != nil {
		return nil, err
	}
	return &TablePlan{tbl: tbl, st: st}, nil
}

func (p *TablePlan) Open() (scan.Scan, error) {
	return p.tbl.Open()
}

func (p *TablePlan) Cost() float64 {
	return p.st.EstimateScanCost()
}

func (p *TablePlan) Cardinality() int {
	return p.st.TotalTuples()
}

func (p *TablePlan) DistinctValues(column string) int {
	return p.st.DistinctValues(column)
}

func (p *TablePlan) EstimateSelectivity(column string, op query.Operator, value query.Constant) float64 {
	return p.st.EstimateSelectivity(column, op, value)
}

func (p *TablePlan) Schema() *record.Schema {
	return p.tbl.Schema()
}
