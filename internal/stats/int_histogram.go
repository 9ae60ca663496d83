package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/robindb/robindb/internal/query"
)

// ErrValueOutOfRange reports an AddValue outside a histogram's fixed
// domain. During statistics collection it means the second scan pass did
// not replay the rows of the first, so it is surfaced rather than
// clamped.
var ErrValueOutOfRange = errors.New("value outside histogram domain")

// IntHistogram approximates the distribution of an integer column over a
// fixed closed range [min, max] with a constant number of equal-width
// buckets. It never stores individual values: adding a value and
// estimating a selectivity are both O(1) in the number of values seen.
type IntHistogram struct {
	buckets []int
	min     int64
	max     int64
	width   float64
	total   int
}

// NewIntHistogram creates a histogram with the given bucket count over
// the inclusive range [min, max].
func NewIntHistogram(buckets int, min, max int64) (*IntHistogram, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("bucket count must be positive, got %d", buckets)
	}
	if max < min {
		return nil, fmt.Errorf("invalid histogram domain [%d, %d]", min, max)
	}
	return &IntHistogram{
		buckets: make([]int, buckets),
		min:     min,
		max:     max,
		width:   math.Max(float64(max-min+1)/float64(buckets), 1.0),
	}, nil
}

// AddValue records one occurrence of v.
func (h *IntHistogram) AddValue(v int64) error {
	if v < h.min || v > h.max {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrValueOutOfRange, v, h.min, h.max)
	}
	h.buckets[h.bucketOf(v)]++
	h.total++
	return nil
}

// bucketOf clamps to the last bucket: (v-min)/width can land one past the
// end when the width was rounded up to 1.
func (h *IntHistogram) bucketOf(v int64) int {
	i := int(float64(v-h.min) / h.width)
	if i > len(h.buckets)-1 {
		i = len(h.buckets) - 1
	}
	return i
}

// EstimateSelectivity returns the estimated fraction of added values v0
// satisfying "v0 op v". Estimates come from bucket heights alone,
// assuming a uniform distribution inside each bucket. The formulas
// complement each other: NotEquals(v) = 1 - Equals(v) for every v, and
// LessThanOrEqual(v) = 1 - GreaterThan(v) everywhere except exactly
// v == min, where the GreaterThan partial-bucket term is computed from
// the raw value rather than its offset into the domain. That term is
// kept as-is: the planner's estimates were calibrated against it.
func (h *IntHistogram) EstimateSelectivity(op query.Operator, v int64) float64 {
	if h.total == 0 {
		return 0.0
	}
	switch op {
	case query.Equals:
		if v < h.min || v > h.max {
			return 0.0
		}
		return float64(h.buckets[h.bucketOf(v)]) / h.width / float64(h.total)
	case query.GreaterThan:
		if v < h.min {
			return 1.0
		}
		if v >= h.max {
			return 0.0
		}
		idx := h.bucketOf(v)
		fraction := float64(h.buckets[idx]) / float64(h.total)
		part := (float64(idx+1)*h.width - float64(v)) / h.width
		tail := 0
		for i := idx + 1; i < len(h.buckets); i++ {
			tail += h.buckets[i]
		}
		return fraction*part + float64(tail)/float64(h.total)
	case query.NotEquals:
		return 1 - h.EstimateSelectivity(query.Equals, v)
	case query.LessThan:
		if v <= h.min {
			return 0.0
		}
		if v > h.max {
			return 1.0
		}
		return 1 - h.EstimateSelectivity(query.Equals, v) - h.EstimateSelectivity(query.GreaterThan, v)
	case query.GreaterThanOrEqual:
		if v <= h.min {
			return 1.0
		}
		if v > h.max {
			return 0.0
		}
		return h.EstimateSelectivity(query.GreaterThan, v) + h.EstimateSelectivity(query.Equals, v)
	case query.LessThanOrEqual:
		if v >= h.max {
			return 1.0
		}
		if v < h.min {
			return 0.0
		}
		return h.EstimateSelectivity(query.Equals, v) + h.EstimateSelectivity(query.LessThan, v)
	}
	return 0.0
}

// AvgSelectivity returns the bucket mass divided by the total count.
// Every AddValue increments exactly one bucket along with the total, so
// this is 1.0 for any non-empty histogram; the literal formula is kept
// because the planner's cost model was written against it.
func (h *IntHistogram) AvgSelectivity() float64 {
	if h.total == 0 {
		return 0.0
	}
	sum := 0
	for _, b := range h.buckets {
		sum += b
	}
	return float64(sum) / float64(h.total)
}

// Total returns the number of values added.
func (h *IntHistogram) Total() int {
	return h.total
}

func (h *IntHistogram) String() string {
	return fmt.Sprintf("min %d, max %d, width %.1f, %d values over %d buckets",
		h.min, h.max, h.width, h.total, len(h.buckets))
}
