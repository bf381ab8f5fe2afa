package selection

import (
	"golang.org/x/exp/constraints"
	"pgregory.net/rand"
)

// Number is the element type the selectors work on. Floats must not be NaN.
type Number interface {
	constraints.Integer | constraints.Float
}

// Rand is the source of pivot indexes. Both *math/rand.Rand and
// *pgregory.net/rand.Rand satisfy it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) Rand {
	return rand.New(seed)
}

func swap[T any](seq []T, i, j int) {
	seq[i], seq[j] = seq[j], seq[i]
}

// InsertionSort sorts seq[p..r] ascending in place.
func InsertionSort[T Number](seq []T, p, r int) {
	for i := p + 1; i <= r; i++ {
		tmp := seq[i]
		j := i - 1
		for j >= p && tmp < seq[j] {
			seq[j+1] = seq[j]
			j--
		}
		seq[j+1] = tmp
	}
}
