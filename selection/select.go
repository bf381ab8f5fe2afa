package selection

import "fmt"

// DefaultThreshold is the sub-range length below which selection falls back
// to insertion sort.
const DefaultThreshold = 11

type options struct {
	threshold int
}

type Option func(*options)

// WithThreshold sets the insertion sort cutoff. Values below 1 keep the default.
func WithThreshold(threshold int) Option {
	return func(o *options) {
		if threshold >= 1 {
			o.threshold = threshold
		}
	}
}

// Selector moves the k largest elements of a slice to its tail using
// randomized partitioning. A Selector is not safe for concurrent use since
// it draws pivots from a single Rand.
type Selector[T Number] struct {
	threshold int
	rnd       Rand
}

func NewSelector[T Number](rnd Rand, opts ...Option) *Selector[T] {
	o := options{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	if rnd == nil {
		panic("selection: nil Rand")
	}
	return &Selector[T]{
		threshold: o.threshold,
		rnd:       rnd,
	}
}

func (s *Selector[T]) Threshold() int {
	return s.threshold
}

// Select reorders seq so that seq[b:] holds its k largest elements and returns
// b, which is always len(seq)-k. Elements of seq[:b] are unordered but each is
// <= every element of seq[b:].
func (s *Selector[T]) Select(seq []T, k int) (int, error) {
	if len(seq) == 0 {
		return 0, ErrEmptyInput
	}
	if k < 1 || k > len(seq) {
		return 0, fmt.Errorf("%w: k [%d] not in [1, %d]", ErrInvalidRank, k, len(seq))
	}
	return s.selectRange(seq, 0, len(seq), k), nil
}

// selectRange returns the boundary index of the k largest elements of
// seq[p:p+n]. The tail call of each step is folded into the loop.
func (s *Selector[T]) selectRange(seq []T, p, n, k int) int {
	for {
		if k < 1 || k > n {
			panic(fmt.Sprintf("selection: rank [%d] outside range of length [%d]", k, n))
		}

		if n < s.threshold {
			InsertionSort(seq, p, p+n-1)
			return p + n - k
		}

		q := s.Partition(seq, p, p+n-1)
		left := q - p
		right := n - left - 1

		if right >= k {
			p, n = q+1, right
		} else if right+1 == k {
			return q
		} else {
			n, k = left, k-right-1
		}
	}
}

// Partition splits seq[p..r] around a pivot drawn uniformly from [p, r] and
// returns the pivot's final index. Afterwards seq[p..idx-1] <= seq[idx] and
// seq[idx+1..r] > seq[idx].
func (s *Selector[T]) Partition(seq []T, p, r int) int {
	if p > r || p < 0 || r >= len(seq) {
		panic(fmt.Sprintf("selection: bad partition bounds [%d, %d] for length [%d]", p, r, len(seq)))
	}

	if p != r {
		swap(seq, p+s.rnd.Intn(r-p+1), r)
	}

	pivot := seq[r]
	q := p - 1
	for i := p; i < r; i++ {
		if seq[i] <= pivot {
			q++
			swap(seq, q, i)
		}
	}
	swap(seq, q+1, r)
	return q + 1
}

// Select is a shorthand for NewSelector(rnd).Select(seq, k).
func Select[T Number](seq []T, k int, rnd Rand) (int, error) {
	return NewSelector[T](rnd).Select(seq, k)
}
