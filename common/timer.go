package common

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/process"
)

// Timer measures wall-clock time around a block of work and samples memory
// usage when it ends.
type Timer struct {
	startTime time.Time
	endTime   time.Time
	elapsed   time.Duration

	memUsed      uint64
	memAvailable uint64
	rss          uint64

	ready bool
}

func NewTimer() *Timer {
	return &Timer{startTime: time.Now()}
}

func (t *Timer) Start() {
	t.startTime = time.Now()
	t.ready = false
}

func (t *Timer) End() *Timer {
	t.endTime = time.Now()
	t.elapsed = t.endTime.Sub(t.startTime)

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	t.memUsed = ms.HeapAlloc
	t.memAvailable = ms.Sys
	t.rss = processRSS()

	t.ready = true
	return t
}

func (t *Timer) Duration() time.Duration {
	if !t.ready {
		t.End()
	}
	return t.elapsed
}

// Memory returns heap bytes in use and bytes obtained from the OS.
func (t *Timer) Memory() (used, available uint64) {
	if !t.ready {
		t.End()
	}
	return t.memUsed, t.memAvailable
}

// RSS returns the resident set size of the process, 0 if it is unavailable.
func (t *Timer) RSS() uint64 {
	if !t.ready {
		t.End()
	}
	return t.rss
}

// Scale divides the elapsed time by num, turning a total into a per-trial mean.
func (t *Timer) Scale(num int) {
	if !t.ready {
		t.End()
	}
	if num > 0 {
		t.elapsed /= time.Duration(num)
	}
}

func (t *Timer) String() string {
	if !t.ready {
		t.End()
	}
	return fmt.Sprintf("Time: %d msec.\nMemory: %s / %s.",
		t.elapsed.Milliseconds(), humanize.IBytes(t.memUsed), humanize.IBytes(t.memAvailable))
}

func processRSS() uint64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	info, err := p.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return info.RSS
}
