package bench

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"kselect/common"
)

type Report struct {
	Algorithm Algorithm
	Size      int
	K         int
	Seed      uint64
	Threshold int
	Verified  bool

	Trials  []time.Duration
	Elapsed time.Duration
	Mean    time.Duration
	Median  time.Duration
	Min     time.Duration
	Max     time.Duration

	MemUsed      uint64
	MemAvailable uint64
	RSS          uint64

	// Summary is the timer's per-trial time and memory, shuffles included.
	Summary string

	StartedAt time.Time
}

func (r *Report) summarize() {
	if len(r.Trials) == 0 {
		return
	}

	var sum time.Duration
	for _, d := range r.Trials {
		sum += d
	}
	r.Mean = sum / time.Duration(len(r.Trials))

	sorted := slices.Clone(r.Trials)
	slices.Sort(sorted)
	r.Min = sorted[0]
	r.Max = sorted[len(sorted)-1]
	r.Median = sorted[len(sorted)/2]
}

// String prints the choice followed by the timer summary.
func (r *Report) String() string {
	return fmt.Sprintf("Choice: %d\n%s", int(r.Algorithm), r.Summary)
}

// Throughput returns the number of input elements processed per second.
func (r *Report) Throughput() float64 {
	if r.Mean <= 0 {
		return 0
	}
	return float64(r.Size) / r.Mean.Seconds()
}

// TrialLines lists the elapsed time of every trial, one per line.
func (r *Report) TrialLines() []string {
	lines := make([]string, len(r.Trials))
	for i, d := range r.Trials {
		lines[i] = fmt.Sprintf("Trial %d: %s", i+1, common.FormatDuration(d))
	}
	return lines
}

func (r *Report) row() []string {
	return []string{
		r.Algorithm.String(),
		common.FormatCount(r.Size),
		common.FormatCount(r.K),
		strconv.Itoa(len(r.Trials)),
		common.FormatDuration(r.Mean),
		common.FormatDuration(r.Median),
		common.FormatDuration(r.Min),
		common.FormatDuration(r.Max),
		common.FormatWithUnits(r.Throughput()) + " /s",
		common.FormatBytes(r.MemUsed) + " / " + common.FormatBytes(r.MemAvailable),
		common.FormatBytes(r.RSS),
	}
}

// Table renders one or more reports as a markdown table.
func Table(reports ...*Report) string {
	data := make([][]string, 0, len(reports))
	for _, r := range reports {
		data = append(data, r.row())
	}

	md := renderer.NewMarkdown(
		tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
		},
	)

	var tableString bytes.Buffer
	table := tablewriter.NewTable(&tableString,
		tablewriter.WithRenderer(md),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithHeaderAlignment(tw.AlignNone),
		tablewriter.WithRowAlignment(tw.AlignNone),
	)
	table.Header([]string{"Algorithm", "Size", "K", "Trials", "Mean", "Median", "Min", "Max", "Elements", "Memory", "RSS"})
	_ = table.Bulk(data)
	_ = table.Render()

	return tableString.String()
}

func (r *Report) Table() string {
	return Table(r)
}

type reportJSON struct {
	Algorithm    string    `json:"algorithm"`
	Choice       int       `json:"choice"`
	Size         int       `json:"size"`
	K            int       `json:"k"`
	Seed         uint64    `json:"seed"`
	Threshold    int       `json:"threshold"`
	Verified     bool      `json:"verified"`
	Trials       []float64 `json:"trials_ms"`
	ElapsedMs    float64   `json:"elapsed_ms"`
	MeanMs       float64   `json:"mean_ms"`
	MedianMs     float64   `json:"median_ms"`
	MinMs        float64   `json:"min_ms"`
	MaxMs        float64   `json:"max_ms"`
	MemUsed      uint64    `json:"mem_used"`
	MemAvailable uint64    `json:"mem_available"`
	RSS          uint64    `json:"rss"`
	StartedAt    time.Time `json:"started_at"`
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (r *Report) MarshalJSON() ([]byte, error) {
	trials := make([]float64, len(r.Trials))
	for i, d := range r.Trials {
		trials[i] = ms(d)
	}
	return json.Marshal(reportJSON{
		Algorithm:    r.Algorithm.String(),
		Choice:       int(r.Algorithm),
		Size:         r.Size,
		K:            r.K,
		Seed:         r.Seed,
		Threshold:    r.Threshold,
		Verified:     r.Verified,
		Trials:       trials,
		ElapsedMs:    ms(r.Elapsed),
		MeanMs:       ms(r.Mean),
		MedianMs:     ms(r.Median),
		MinMs:        ms(r.Min),
		MaxMs:        ms(r.Max),
		MemUsed:      r.MemUsed,
		MemAvailable: r.MemAvailable,
		RSS:          r.RSS,
		StartedAt:    r.StartedAt,
	})
}

func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
