package common

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestReporter(t *testing.T) {
	r := NewReporter(10, time.Hour, 0, func(rs ReporterState) string {
		return fmt.Sprintf("ran [%d] trials, total [%d]", rs.CountInc, rs.Count)
	})

	for i := 0; i < 9; i++ {
		ok, _ := r.Add(1)
		assert.Equal(t, ok, false)
	}
	ok, msg := r.Add(1)
	assert.Equal(t, ok, true)
	assert.Equal(t, msg, "ran [10] trials, total [10]")

	ok, _ = r.Add(3)
	assert.Equal(t, ok, false)
	assert.Equal(t, r.Finish(), "ran [13] trials, total [13]")
}
