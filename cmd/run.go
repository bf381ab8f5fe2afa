package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"kselect/bench"
	"kselect/common"
	"kselect/config"
	"kselect/net"
)

type runOptions struct {
	trials    int
	k         int
	seed      uint64
	threshold int
	verify    bool
	compare   bool
	format    string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [size] [choice]",
		Short: "Benchmark selection of the k largest elements",
		Long: "Shuffles 0..size-1 before every trial and selects its size/2 largest elements.\n" +
			"Choice 1 runs randomized quickselect, choice 2 runs the bounded min-heap, default is random.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if err = applyRunArgs(cmd, &cfg.Bench, opts, args); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runBench(ctx, cmd.OutOrStdout(), &cfg.Bench, opts)
		},
	}

	cmd.Flags().IntVar(&opts.trials, "trials", 0, "Number of trials (default from config, 100)")
	cmd.Flags().IntVar(&opts.k, "k", 0, "Number of largest elements to select (default size/2)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed, 0 picks one from the clock")
	cmd.Flags().IntVar(&opts.threshold, "threshold", 0, "Insertion sort cutoff (default 11)")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Check every result against a sort-based reference")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "Run both algorithms with the same seed")
	cmd.Flags().StringVar(&opts.format, "format", "plain", "Output format: plain, table or json")

	return cmd
}

// applyRunArgs overlays positional args and changed flags on the loaded config.
func applyRunArgs(cmd *cobra.Command, cfg *config.BenchConfig, opts *runOptions, args []string) error {
	if len(args) > 0 {
		size, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: [%s]", bench.ErrInvalidSize, args[0])
		}
		cfg.Size = size
	}
	if len(args) > 1 {
		algorithm, err := bench.ParseAlgorithm(args[1])
		if err != nil {
			return err
		}
		cfg.Algorithm = int(algorithm)
	}

	flags := cmd.Flags()
	if flags.Changed("trials") {
		cfg.Trials = opts.trials
	}
	if flags.Changed("k") {
		cfg.K = opts.k
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("threshold") {
		cfg.Threshold = opts.threshold
	}
	if flags.Changed("verify") {
		cfg.Verify = opts.verify
	}

	switch opts.format {
	case "plain", "table", "json":
		return nil
	default:
		return fmt.Errorf("unknown format [%s]", opts.format)
	}
}

func newRunner(cfg *config.BenchConfig) *bench.Runner {
	runner := bench.NewRunner(cfg.Size, cfg.K, cfg.Trials, bench.Algorithm(cfg.Algorithm), cfg.Seed)
	runner.Threshold = cfg.Threshold
	runner.Verify = cfg.Verify
	return runner
}

func runBench(ctx context.Context, out io.Writer, cfg *config.BenchConfig, opts *runOptions) error {
	runner := newRunner(cfg)

	var reports []*bench.Report
	if opts.compare {
		selectReport, topkReport, err := runner.Compare(ctx)
		if err != nil {
			zap.S().Named("[run]").Error(err)
			return err
		}
		reports = append(reports, selectReport, topkReport)
		zap.S().Named("[run]").Infof("Bounded heap mean [%s] vs quickselect mean [%s], change [%s]",
			common.FormatDuration(topkReport.Mean), common.FormatDuration(selectReport.Mean),
			common.FormatChangePercent(float64(selectReport.Mean), float64(topkReport.Mean)))
	} else {
		report, err := runner.Run(ctx)
		if err != nil {
			zap.S().Named("[run]").Error(err)
			return err
		}
		reports = append(reports, report)
	}

	if err := printReports(out, opts.format, reports); err != nil {
		return err
	}

	for _, report := range reports {
		if err := net.PostReport(report); err != nil {
			return err
		}
	}
	return nil
}

func printReports(out io.Writer, format string, reports []*bench.Report) error {
	switch format {
	case "json":
		for _, report := range reports {
			data, err := report.JSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		}
	case "table":
		fmt.Fprint(out, bench.Table(reports...))
	default:
		for _, report := range reports {
			for _, line := range report.TrialLines() {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, report.String())
		}
	}
	return nil
}
