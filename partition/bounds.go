package partition

import (
	"math"

	"github.com/surister/conecta/perrors"
)

// Bound is a half-open interval [Start, Stop) over a partitioning
// column, except for the last partition of a set which is
// [Start, Stop] — IsLast distinguishes the two. Grounded on
// partition.rs's bounds().
type Bound struct {
	Start  int64
	Stop   int64
	IsLast bool
}

// computeBounds splits [min, max] into n half-open intervals.
//   - step = (max − min) / n, real division
//   - stop_{n−1} is forced to max so rounding drift does not lose or
//     double-count rows (spec.md §4.1)
func computeBounds(min, max int64, n uint16) (bounds []Bound, err error) {
	if min >= max {
		return nil, perrors.Errorf("partition: min (%d) must be less than max (%d)", min, max)
	}
	if n == 0 {
		return nil, perrors.New("partition: n must be greater than 0")
	}

	bounds = make([]Bound, n)
	var step = float64(max-min) / float64(n)
	for i := uint16(0); i < n; i++ {
		var start = int64(math.Round(float64(i)*step + float64(min)))
		var stop = int64(math.Round(float64(start) + step))
		var isLast = i == n-1
		if isLast {
			stop = max
		}
		bounds[i] = Bound{Start: start, Stop: stop, IsLast: isLast}
	}
	return
}
