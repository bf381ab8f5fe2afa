package bench

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"kselect/common"
	"kselect/selection"
)

const (
	DefaultSize   = 100
	DefaultTrials = 100
)

// Runner shuffles the sequence 0..Size-1 before every trial and runs the
// chosen algorithm over it. A zero K means Size/2.
type Runner struct {
	Size      int
	K         int
	Trials    int
	Algorithm Algorithm
	Threshold int
	Seed      uint64
	Verify    bool

	logger *zap.SugaredLogger
}

func NewRunner(size, k, trials int, algorithm Algorithm, seed uint64) *Runner {
	return &Runner{
		Size:      size,
		K:         k,
		Trials:    trials,
		Algorithm: algorithm,
		Threshold: selection.DefaultThreshold,
		Seed:      seed,

		logger: zap.S().Named("[bench]"),
	}
}

func (r *Runner) normalize() error {
	if r.Size <= 0 {
		return fmt.Errorf("%w: [%d]", ErrInvalidSize, r.Size)
	}
	if r.K < 0 || r.K > r.Size {
		return fmt.Errorf("%w: k [%d] not in [1, %d]", selection.ErrInvalidRank, r.K, r.Size)
	}
	if r.Trials <= 0 {
		r.Trials = DefaultTrials
	}
	if r.K == 0 {
		r.K = r.Size / 2
		if r.K == 0 {
			r.K = 1
		}
	}
	if r.Algorithm != AlgorithmRandom && !r.Algorithm.Valid() {
		return fmt.Errorf("%w: [%d]", ErrInvalidAlgorithm, int(r.Algorithm))
	}
	if r.Seed == 0 {
		r.Seed = uint64(time.Now().UnixNano())
	}
	if r.logger == nil {
		r.logger = zap.S().Named("[bench]")
	}
	return nil
}

// Run executes the trials and returns their report. Cancelling ctx stops the
// run between trials.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.normalize(); err != nil {
		return nil, err
	}

	rnd := selection.NewRand(r.Seed)
	algorithm := r.Algorithm
	if algorithm == AlgorithmRandom {
		algorithm = Algorithm(1 + rnd.Intn(2))
	}
	sel := selection.NewSelector[int](rnd, selection.WithThreshold(r.Threshold))

	report := &Report{
		Algorithm: algorithm,
		Size:      r.Size,
		K:         r.K,
		Seed:      r.Seed,
		Threshold: sel.Threshold(),
		Trials:    make([]time.Duration, 0, r.Trials),
		Verified:  r.Verify,
		StartedAt: time.Now(),
	}

	reporter := common.NewReporter(0, 5*time.Second, 1, func(rs common.ReporterState) string {
		return fmt.Sprintf("Ran [%d] %s trials in [%.2fs], speed [%.2ftrials/sec]", rs.CountInc, algorithm, rs.ElapsedTime, float64(rs.CountInc)/rs.ElapsedTime)
	})

	r.logger.Infof("Start benchmark, algorithm [%s], size [%d], k [%d], trials [%d], seed [%d]",
		algorithm, r.Size, r.K, r.Trials, r.Seed)

	seq := common.Sequence(r.Size)
	total := common.NewTimer()
	for i := 0; i < r.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		common.Shuffle(seq, rnd)

		start := time.Now()
		top, err := r.trial(sel, algorithm, seq)
		elapsed := time.Since(start)
		if err != nil {
			return nil, err
		}
		report.Trials = append(report.Trials, elapsed)
		r.logger.Debugf("Trial [%d] took [%s]", i+1, common.FormatDuration(elapsed))

		if r.Verify {
			if err := verify(algorithm, seq, top, r.K); err != nil {
				return nil, fmt.Errorf("trial [%d]: %w", i+1, err)
			}
		}

		if shouldReport, reportContent := reporter.Add(1); shouldReport {
			r.logger.Info(reportContent)
		}
	}
	total.End()

	report.Elapsed = total.Duration()
	report.MemUsed, report.MemAvailable = total.Memory()
	report.RSS = total.RSS()
	total.Scale(len(report.Trials))
	report.Summary = total.String()
	report.summarize()

	r.logger.Infof("Finish benchmark, algorithm [%s], mean [%s], memory [%s / %s]",
		algorithm, common.FormatDuration(report.Mean), common.FormatBytes(report.MemUsed), common.FormatBytes(report.MemAvailable))

	return report, nil
}

// trial runs one selection. For AlgorithmSelect the result aliases seq.
func (r *Runner) trial(sel *selection.Selector[int], algorithm Algorithm, seq []int) ([]int, error) {
	switch algorithm {
	case AlgorithmSelect:
		b, err := sel.Select(seq, r.K)
		if err != nil {
			return nil, err
		}
		return seq[b:], nil
	case AlgorithmTopK:
		return selection.TopKStream(seq, r.K)
	default:
		return nil, fmt.Errorf("%w: [%d]", ErrInvalidAlgorithm, int(algorithm))
	}
}

// verify checks top against the sort-based reference as multisets. For
// quickselect it also checks that seq is split at its boundary.
func verify(algorithm Algorithm, seq, top []int, k int) error {
	if len(top) != k {
		return fmt.Errorf("%w: got [%d] values, want [%d]", ErrVerification, len(top), k)
	}
	if algorithm == AlgorithmSelect && !selection.IsSelected(seq, len(seq)-k) {
		return fmt.Errorf("%w: sequence not split at boundary [%d]", ErrVerification, len(seq)-k)
	}
	want := selection.Reference(seq, k)
	seen := make(map[int]int, k)
	for _, v := range top {
		seen[v]++
	}
	for _, v := range want {
		if seen[v] == 0 {
			return fmt.Errorf("%w: value [%d] missing from result", ErrVerification, v)
		}
		seen[v]--
	}
	return nil
}

// Compare runs both algorithms with the same seed, so both see the same
// sequence of shuffles.
func (r *Runner) Compare(ctx context.Context) (selectReport, topkReport *Report, err error) {
	if err = r.normalize(); err != nil {
		return nil, nil, err
	}

	selectRunner := *r
	selectRunner.Algorithm = AlgorithmSelect
	if selectReport, err = selectRunner.Run(ctx); err != nil {
		return nil, nil, err
	}

	topkRunner := *r
	topkRunner.Algorithm = AlgorithmTopK
	if topkReport, err = topkRunner.Run(ctx); err != nil {
		return nil, nil, err
	}
	return selectReport, topkReport, nil
}
