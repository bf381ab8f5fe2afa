package bench

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidAlgorithm = errors.New("invalid algorithm")
	ErrInvalidSize      = errors.New("invalid size")
	ErrVerification     = errors.New("verification failed")
)

type Algorithm int

const (
	AlgorithmRandom Algorithm = 0
	AlgorithmSelect Algorithm = 1
	AlgorithmTopK   Algorithm = 2
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmSelect:
		return "select"
	case AlgorithmTopK:
		return "topk"
	case AlgorithmRandom:
		return "random"
	default:
		return "unknown(" + strconv.Itoa(int(a)) + ")"
	}
}

func (a Algorithm) Valid() bool {
	return a == AlgorithmSelect || a == AlgorithmTopK
}

// ParseAlgorithm accepts the numeric choice ("1", "2") or the algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "random":
		return AlgorithmRandom, nil
	case "1", "select":
		return AlgorithmSelect, nil
	case "2", "topk", "pq":
		return AlgorithmTopK, nil
	default:
		return 0, fmt.Errorf("%w: [%s]", ErrInvalidAlgorithm, s)
	}
}

func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnmarshalJSON accepts both the numeric choice and the quoted name.
func (a *Algorithm) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	return a.UnmarshalText(bytes.Trim(data, `"`))
}
