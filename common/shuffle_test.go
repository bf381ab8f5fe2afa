package common

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestShuffle(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	seq := Sequence(50)
	Shuffle(seq, r)

	sorted := slices.Clone(seq)
	slices.Sort(sorted)
	assert.Equal(t, sorted, Sequence(50))
	assert.NotEqual(t, seq, Sequence(50))
}

func TestShuffle_Uniform(t *testing.T) {
	// Fisher–Yates may leave an element in place, Sattolo's variant never does.
	r := rand.New(rand.NewSource(2))
	counts := make(map[[3]int]int)
	for i := 0; i < 6000; i++ {
		seq := []int{0, 1, 2}
		Shuffle(seq, r)
		counts[[3]int(seq)]++
	}
	assert.Equal(t, len(counts), 6)
	for perm, count := range counts {
		if count < 800 || count > 1200 {
			t.Errorf("permutation %v drawn [%d] times", perm, count)
		}
	}
}

func TestShuffle_Small(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	empty := []int{}
	Shuffle(empty, r)
	assert.Equal(t, len(empty), 0)

	one := []int{7}
	Shuffle(one, r)
	assert.Equal(t, one, []int{7})
}
