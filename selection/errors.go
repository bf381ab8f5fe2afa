package selection

import "errors"

var (
	// ErrInvalidRank is returned when k is outside [1, len(seq)].
	ErrInvalidRank = errors.New("invalid rank")
	// ErrEmptyInput is returned when selecting from a zero-length sequence.
	ErrEmptyInput = errors.New("empty input")
)
