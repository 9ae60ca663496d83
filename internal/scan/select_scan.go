package scan

import "github.com/robindb/robindb/internal/query"

// SelectScan filters an underlying scan by a predicate.
type SelectScan struct {
	s    Scan
	pred *query.Predicate
}

// NewSelectScan wraps s so that only rows satisfying pred are visible.
func NewSelectScan(s Scan, pred *query.Predicate) *SelectScan {
	return &SelectScan{s: s, pred: pred}
}

func (ss *SelectScan) BeforeFirst() error {
	return ss.s.BeforeFirst()
}

func (ss *SelectScan) Next() (bool, error) {
	for {
		ok, err := ss.s.Next()
		if err != nil || !ok {
			return false, err
		}
		satisfied, err := ss.pred.IsSatisfied(ss.s)
		if err != nil {
			return false, err
		}
		if satisfied {
			return true, nil
		}
	}
}

func (ss *SelectScan) GetInt(column string) (int, error) {
	return ss.s.GetInt(column)
}

func (ss *SelectScan) GetString(column string) (string, error) {
	return ss.s.GetString(column)
}

func (ss *SelectScan) HasColumn(column string) bool {
	return ss.s.HasColumn(column)
}

func (ss *SelectScan) Close() {
	ss.s.Close()
}
