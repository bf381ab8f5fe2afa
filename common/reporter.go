package common

import "time"

type ReporterState struct {
	Count       int
	CountInc    int
	ElapsedTime float64
	TotalTime   float64
}

type Reporter struct {
	reportCountThreshold int
	reportInterval       time.Duration
	minCountInc          int
	format               func(rs ReporterState) string

	count     int
	startTime time.Time

	lastReportTime  time.Time
	lastReportCount int
}

// NewReporter builds a Reporter which fires once countThreshold items were
// added or interval passed since the last report, but never with fewer than
// minCountInc new items.
func NewReporter(countThreshold int, interval time.Duration, minCountInc int, format func(rs ReporterState) string) *Reporter {
	return &Reporter{
		reportCountThreshold: countThreshold,
		reportInterval:       interval,
		minCountInc:          minCountInc,
		format:               format,
		startTime:            time.Now(),
		lastReportTime:       time.Now(),
	}
}

func (r *Reporter) Add(count int) (bool, string) {
	r.count += count

	countInc := r.count - r.lastReportCount
	if countInc == 0 || countInc < r.minCountInc {
		return false, ""
	}

	elapsedTime := time.Since(r.lastReportTime).Seconds()
	if (r.reportCountThreshold != 0 && countInc >= r.reportCountThreshold) || elapsedTime >= r.reportInterval.Seconds() {
		reportStr := r.format(r.state(countInc, elapsedTime))
		r.lastReportTime = time.Now()
		r.lastReportCount = r.count
		return true, reportStr
	}
	return false, ""
}

func (r *Reporter) Finish() string {
	return r.format(r.state(r.count, time.Since(r.startTime).Seconds()))
}

func (r *Reporter) state(countInc int, elapsedTime float64) ReporterState {
	return ReporterState{
		Count:       r.count,
		CountInc:    countInc,
		ElapsedTime: elapsedTime,
		TotalTime:   time.Since(r.startTime).Seconds(),
	}
}
