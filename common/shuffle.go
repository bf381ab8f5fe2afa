package common

// Intn is satisfied by *math/rand.Rand and *pgregory.net/rand.Rand.
type Intn interface {
	Intn(n int) int
}

// Shuffle permutes seq uniformly at random with Fisher–Yates.
func Shuffle[T any](seq []T, rnd Intn) {
	for i := len(seq) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// Sequence returns [0, 1, ..., n-1].
func Sequence(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return seq
}
