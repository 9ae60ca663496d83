package stats

import (
	"encoding/binary"
	"fmt"
	"strings"

	boom "github.com/tylertreat/BoomFilters"

	"github.com/robindb/robindb/internal/catalog"
	"github.com/robindb/robindb/internal/query"
	"github.com/robindb/robindb/internal/record"
)

const (
	// CostPerPage is the default unit cost of reading one page from disk.
	CostPerPage = 1000

	// NumBuckets is the bucket count of every histogram. Tests assume at
	// least 100.
	NumBuckets = 100
)

// hllTargetError is the standard error of the per-column distinct-value
// sketches.
const hllTargetError = 0.01

// TableStats holds per-column histograms and size counters for one table.
// A TableStats is immutable once built: recomputation replaces the whole
// value instead of updating it in place, so readers never need a lock.
type TableStats struct {
	table         string
	ioCostPerPage float64
	pages         int
	rows          int
	schema        *record.Schema
	intHists      map[string]*IntHistogram
	strHists      map[string]*StringHistogram
	distinct      map[string]*boom.HyperLogLog
}

// NewTableStats scans tbl and builds one histogram per column. The build
// is a two-phase protocol: a first pass discovers each integer column's
// (min, max) and fills the string histograms, which need no bounds; the
// integer histograms are then created with those bounds and filled by a
// second pass over the rewound scan. Integer histograms cannot be filled
// in the first pass because their domain must be fixed before any value
// is added.
//
// Any scan failure abandons the build; no partially filled TableStats is
// ever returned.
func NewTableStats(tbl *catalog.Table, ioCostPerPage float64) (*TableStats, error) {
	sch := tbl.Schema()
	st := &TableStats{
		table:         tbl.Name(),
		ioCostPerPage: ioCostPerPage,
		schema:        sch,
		intHists:      make(map[string]*IntHistogram),
		strHists:      make(map[string]*StringHistogram),
		distinct:      make(map[string]*boom.HyperLogLog),
	}
	for _, col := range sch.Columns() {
		hll, err := boom.NewDefaultHyperLogLog(hllTargetError)
		if err != nil {
			return nil, fmt.Errorf("distinct sketch for %s.%s: %w", tbl.Name(), col, err)
		}
		st.distinct[col] = hll
	}

	ts, err := tbl.Open()
	if err != nil {
		return nil, fmt.Errorf("open scan of %s: %w", tbl.Name(), err)
	}
	defer ts.Close()

	mins := make(map[string]int64)
	maxs := make(map[string]int64)

	// Pass 1: integer bounds, string fill, row count, distinct sketches.
	for {
		ok, err := ts.Next()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", tbl.Name(), err)
		}
		if !ok {
			break
		}
		st.rows++
		for _, col := range sch.Columns() {
			info, _ := sch.Column(col)
			switch info.Type {
			case record.Integer:
				v, err := ts.GetInt(col)
				if err != nil {
					return nil, fmt.Errorf("scan %s.%s: %w", tbl.Name(), col, err)
				}
				v64 := int64(v)
				if cur, seen := mins[col]; !seen || v64 < cur {
					mins[col] = v64
				}
				if cur, seen := maxs[col]; !seen || v64 > cur {
					maxs[col] = v64
				}
				var buf [8]byte
				binary.BigEndian.PutUint64(buf[:], uint64(v64))
				st.distinct[col].Add(buf[:])
			case record.Varchar:
				s, err := ts.GetString(col)
				if err != nil {
					return nil, fmt.Errorf("scan %s.%s: %w", tbl.Name(), col, err)
				}
				hist := st.strHists[col]
				if hist == nil {
					hist, err = NewStringHistogram(NumBuckets)
					if err != nil {
						return nil, err
					}
					st.strHists[col] = hist
				}
				if err := hist.AddValue(s); err != nil {
					return nil, fmt.Errorf("histogram %s.%s: %w", tbl.Name(), col, err)
				}
				st.distinct[col].Add([]byte(s))
			}
		}
	}

	// Integer histograms get their domains fixed before the fill pass.
	// Columns never observed (an empty table) get no histogram at all.
	for col, lo := range mins {
		h, err := NewIntHistogram(NumBuckets, lo, maxs[col])
		if err != nil {
			return nil, fmt.Errorf("histogram %s.%s: %w", tbl.Name(), col, err)
		}
		st.intHists[col] = h
	}

	// Pass 2: the rewound scan must replay the first pass's rows. A value
	// outside the bounds discovered there means it did not, and the build
	// fails rather than clamping the value.
	if err := ts.BeforeFirst(); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", tbl.Name(), err)
	}
	for {
		ok, err := ts.Next()
		if err != nil {
			return nil, fmt.Errorf("rescan %s: %w", tbl.Name(), err)
		}
		if !ok {
			break
		}
		for _, col := range sch.Columns() {
			info, _ := sch.Column(col)
			if info.Type != record.Integer {
				continue
			}
			v, err := ts.GetInt(col)
			if err != nil {
				return nil, fmt.Errorf("rescan %s.%s: %w", tbl.Name(), col, err)
			}
			if err := st.intHists[col].AddValue(int64(v)); err != nil {
				return nil, fmt.Errorf("histogram %s.%s: %w", tbl.Name(), col, err)
			}
		}
	}

	pages, err := tbl.Pages()
	if err != nil {
		return nil, fmt.Errorf("page count of %s: %w", tbl.Name(), err)
	}
	st.pages = pages
	return st, nil
}

// Table returns the name of the table these statistics describe.
func (st *TableStats) Table() string {
	return st.table
}

// EstimateScanCost estimates the cost of sequentially scanning the whole
// table. The literal cost model is carried over from the original
// optimizer: the unit is per-page I/O but the scale factor is the row
// count.
func (st *TableStats) EstimateScanCost() float64 {
	return st.ioCostPerPage * float64(st.rows) * 2.0
}

// EstimateCardinality returns the number of rows expected to survive a
// predicate with the given selectivity.
func (st *TableStats) EstimateCardinality(selectivity float64) int {
	return int(selectivity * float64(st.rows))
}

// TotalTuples returns the number of rows counted during the build scan.
func (st *TableStats) TotalTuples() int {
	return st.rows
}

// Pages returns the number of blocks in the table's file at build time.
func (st *TableStats) Pages() int {
	return st.pages
}

// EstimateSelectivity estimates the fraction of rows satisfying
// "column op value". Columns with no histogram (an empty table, an
// unknown column, or a literal of the wrong variant) yield 0 so the
// planner can keep costing the plan.
func (st *TableStats) EstimateSelectivity(column string, op query.Operator, value query.Constant) float64 {
	info, ok := st.schema.Column(column)
	if !ok {
		return 0.0
	}
	switch info.Type {
	case record.Integer:
		h := st.intHists[column]
		if h == nil || !value.IsInt() {
			return 0.0
		}
		return h.EstimateSelectivity(op, int64(value.AsInt()))
	case record.Varchar:
		h := st.strHists[column]
		if h == nil || !value.IsString() {
			return 0.0
		}
		return h.EstimateSelectivity(op, value.AsString())
	}
	return 0.0
}

// AvgSelectivity returns the expected selectivity of "column op v" for an
// unknown v. The operator is accepted for symmetry with
// EstimateSelectivity; the bucket average does not depend on it. Columns
// with no histogram yield 0.
func (st *TableStats) AvgSelectivity(column string, op query.Operator) float64 {
	info, ok := st.schema.Column(column)
	if !ok {
		return 0.0
	}
	switch info.Type {
	case record.Integer:
		if h := st.intHists[column]; h != nil {
			return h.AvgSelectivity()
		}
	case record.Varchar:
		if h := st.strHists[column]; h != nil {
			return h.AvgSelectivity()
		}
	}
	return 0.0
}

// DistinctValues estimates the number of distinct values of a column,
// from the sketch filled during the build scan. The estimate is capped at
// the row count.
func (st *TableStats) DistinctValues(column string) int {
	hll, ok := st.distinct[column]
	if !ok {
		return 0
	}
	n := int(hll.Count())
	if n > st.rows {
		n = st.rows
	}
	return n
}

// Describe returns a human-readable summary of the statistics.
func (st *TableStats) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "table %s: %d rows, %d pages, scan cost %.0f\n",
		st.table, st.rows, st.pages, st.EstimateScanCost())
	for _, col := range st.schema.Columns() {
		info, _ := st.schema.Column(col)
		switch info.Type {
		case record.Integer:
			if h := st.intHists[col]; h != nil {
				fmt.Fprintf(&b, "  %s (int): %s, ~%d distinct\n", col, h, st.DistinctValues(col))
			} else {
				fmt.Fprintf(&b, "  %s (int): no histogram\n", col)
			}
		case record.Varchar:
			if h := st.strHists[col]; h != nil {
				fmt.Fprintf(&b, "  %s (varchar): %s, ~%d distinct\n", col, h, st.DistinctValues(col))
			} else {
				fmt.Fprintf(&b, "  %s (varchar): no histogram\n", col)
			}
		}
	}
	return b.String()
}
