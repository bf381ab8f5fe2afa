package selection

import "slices"

// Reference returns the k largest values of seq, ascending, by sorting a copy.
func Reference[T Number](seq []T, k int) []T {
	sorted := slices.Clone(seq)
	slices.Sort(sorted)
	if k > len(sorted) {
		k = len(sorted)
	}
	if k < 0 {
		k = 0
	}
	return sorted[len(sorted)-k:]
}

// IsSelected reports whether every element of seq[:b] is <= every element of
// seq[b:].
func IsSelected[T Number](seq []T, b int) bool {
	if b <= 0 || b >= len(seq) {
		return b >= 0 && b <= len(seq)
	}
	return slices.Max(seq[:b]) <= slices.Min(seq[b:])
}
