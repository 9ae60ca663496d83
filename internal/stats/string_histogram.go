package stats

import "github.com/robindb/robindb/internal/query"

// String columns have no numeric bounds known up front, so each string is
// mapped onto an ordinal in a fixed closed range and histogrammed with
// the same bucket math as integers. The mapping packs the first four
// bytes of the string into an integer, which preserves lexicographic
// order for ASCII data; anything above "zzzz" clamps to the top of the
// domain.
const (
	minOrdinal int64 = 0
	maxOrdinal int64 = 'z'<<24 | 'z'<<16 | 'z'<<8 | 'z'
)

// ordinal maps a string onto [minOrdinal, maxOrdinal], monotonically with
// respect to lexicographic order over its first four bytes.
func ordinal(s string) int64 {
	var v int64
	for i := 0; i < 4; i++ {
		v <<= 8
		if i < len(s) {
			v |= int64(s[i])
		}
	}
	if v < minOrdinal {
		v = minOrdinal
	}
	if v > maxOrdinal {
		v = maxOrdinal
	}
	return v
}

// StringHistogram approximates the distribution of a string column by
// histogramming ordinals. Because ordinals are clamped into the fixed
// domain, AddValue accepts any string.
type StringHistogram struct {
	hist *IntHistogram
}

// NewStringHistogram creates a string histogram with the given bucket
// count.
func NewStringHistogram(buckets int) (*StringHistogram, error) {
	h, err := NewIntHistogram(buckets, minOrdinal, maxOrdinal)
	if err != nil {
		return nil, err
	}
	return &StringHistogram{hist: h}, nil
}

// AddValue records one occurrence of s.
func (h *StringHistogram) AddValue(s string) error {
	return h.hist.AddValue(ordinal(s))
}

// EstimateSelectivity returns the estimated fraction of added strings s0
// satisfying "s0 op s", computed on the ordinal representation.
func (h *StringHistogram) EstimateSelectivity(op query.Operator, s string) float64 {
	return h.hist.EstimateSelectivity(op, ordinal(s))
}

// AvgSelectivity returns the bucket mass divided by the total count, as
// for IntHistogram.
func (h *StringHistogram) AvgSelectivity() float64 {
	return h.hist.AvgSelectivity()
}

// Total returns the number of strings added.
func (h *StringHistogram) Total() int {
	return h.hist.Total()
}

func (h *StringHistogram) String() string {
	return h.hist.String()
}
