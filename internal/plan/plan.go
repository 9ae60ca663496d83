package plan

import (
	"github.com/robindb/robindb/internal/query"
	"github.com/robindb/robindb/internal/record"
	"github.com/robindb/robindb/internal/scan"
)

// Plan is a relational algebra node that can produce a scan and report
// optimizer estimates for it. The estimate methods are pure reads over
// published statistics; opening or costing a plan never mutates them.
type Plan interface {
	// Open returns a scan over the plan's output rows.
	Open() (scan.Scan, error)
	// Cost estimates the I/O cost of executing the plan once.
	Cost() float64
	// Cardinality estimates the number of rows the plan produces.
	Cardinality() int
	// DistinctValues estimates the distinct values of a column in the
	// plan's output.
	DistinctValues(column string) int
	// EstimateSelectivity estimates the fraction of the plan's rows
	// satisfying "column op value".
	EstimateSelectivity(column string, op query.Operator, value query.Constant) float64
	// Schema describes the plan's output rows.
	Schema() *record.Schema
}
