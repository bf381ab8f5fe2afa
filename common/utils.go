package common

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

func FormatWithUnits(n float64) string {
	abs := math.Abs(n)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2f T", n/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2f B", n/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2f M", n/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2f K", n/1e3)
	default:
		return fmt.Sprintf("%.2f", n)
	}
}

func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}

func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatDuration prints d in microseconds below one millisecond and in
// milliseconds otherwise.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.2f µs", float64(d)/float64(time.Microsecond))
	}
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}

func FormatChangePercent(oldValue, newValue float64) string {
	if oldValue == 0 {
		return "∞%"
	} else {
		change := newValue - oldValue
		changePercent := change / oldValue * 100.0
		if changePercent <= 0 {
			return fmt.Sprintf("%.2f%%", changePercent)
		} else {
			return fmt.Sprintf("+%.2f%%", changePercent)
		}
	}
}
