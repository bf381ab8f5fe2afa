package selection

import (
	"container/heap"
	"fmt"
	"iter"
)

type minHeap[T Number] []T

func (h minHeap[T]) Len() int           { return len(h) }
func (h minHeap[T]) Less(i, j int) bool { return h[i] < h[j] }
func (h minHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap[T]) Push(x any)        { *h = append(*h, x.(T)) }

func (h *minHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// BoundedHeap keeps the k largest values offered to it.
type BoundedHeap[T Number] struct {
	k int
	h minHeap[T]
}

// NewBoundedHeap returns an empty heap retaining at most k values. Storage
// grows with the values admitted, not with k.
func NewBoundedHeap[T Number](k int) *BoundedHeap[T] {
	return newBoundedHeap[T](k, 0)
}

func newBoundedHeap[T Number](k, sizeHint int) *BoundedHeap[T] {
	if k < 0 {
		k = 0
	}
	return &BoundedHeap[T]{
		k: k,
		h: make(minHeap[T], 0, min(k, max(sizeHint, 0))),
	}
}

// Offer admits x if the heap is not full or x is larger than the current
// minimum, evicting that minimum. It reports whether x was admitted.
func (b *BoundedHeap[T]) Offer(x T) bool {
	if b.k == 0 {
		return false
	}
	if len(b.h) < b.k {
		heap.Push(&b.h, x)
		return true
	}
	if x > b.h[0] {
		b.h[0] = x
		heap.Fix(&b.h, 0)
		return true
	}
	return false
}

// Min returns the smallest retained value.
func (b *BoundedHeap[T]) Min() (T, bool) {
	if len(b.h) == 0 {
		var zero T
		return zero, false
	}
	return b.h[0], true
}

func (b *BoundedHeap[T]) Len() int {
	return len(b.h)
}

func (b *BoundedHeap[T]) Cap() int {
	return b.k
}

// Values returns a copy of the retained values in heap order.
func (b *BoundedHeap[T]) Values() []T {
	res := make([]T, len(b.h))
	copy(res, b.h)
	return res
}

// TopKIter drains next and returns the k largest values it yielded, in no
// particular order. Fewer than k values yields all of them.
func TopKIter[T Number](next func() (T, bool), k int) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k [%d] is negative", ErrInvalidRank, k)
	}
	bh := NewBoundedHeap[T](k)
	if k == 0 {
		return bh.Values(), nil
	}
	for x, ok := next(); ok; x, ok = next() {
		bh.Offer(x)
	}
	return bh.Values(), nil
}

// TopKSeq returns the k largest values yielded by seq.
func TopKSeq[T Number](seq iter.Seq[T], k int) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k [%d] is negative", ErrInvalidRank, k)
	}
	bh := NewBoundedHeap[T](k)
	if k == 0 {
		return bh.Values(), nil
	}
	for x := range seq {
		bh.Offer(x)
	}
	return bh.Values(), nil
}

// TopKStream returns the k largest values of seq without modifying it.
func TopKStream[T Number](seq []T, k int) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k [%d] is negative", ErrInvalidRank, k)
	}
	bh := newBoundedHeap[T](k, len(seq))
	if k == 0 {
		return bh.Values(), nil
	}
	for _, x := range seq {
		bh.Offer(x)
	}
	return bh.Values(), nil
}
