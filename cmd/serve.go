package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"kselect/api"
	"kselect/config"
	"kselect/net"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the selection API and run scheduled benchmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			apiSrv := api.New(&cfg.Server, &cfg.Bench)
			apiSrv.Start()

			c, err := scheduleBench(cfg, apiSrv)
			if err != nil {
				apiSrv.Stop()
				return err
			}
			c.Start()

			watchOSSignal(c, apiSrv)
			return nil
		},
	}
}

// scheduleBench registers the configured benchmark on a cron with seconds
// precision. An empty schedule leaves the cron without jobs.
func scheduleBench(cfg *config.Config, apiSrv *api.Server) (*cron.Cron, error) {
	logger := zap.S().Named("[cron]")

	c := cron.New(cron.WithSeconds())
	if cfg.Bench.Schedule == "" {
		return c, nil
	}

	_, err := c.AddFunc(cfg.Bench.Schedule, benchJob(&cfg.Bench, apiSrv, logger))
	if err != nil {
		return nil, err
	}

	logger.Infof("Scheduled benchmark with spec [%s]", cfg.Bench.Schedule)
	return c, nil
}

func benchJob(cfg *config.BenchConfig, apiSrv *api.Server, logger *zap.SugaredLogger) func() {
	return func() {
		report, err := newRunner(cfg).Run(context.Background())
		if err != nil {
			logger.Errorf("Scheduled benchmark error: [%s]", err.Error())
			return
		}
		apiSrv.SetLatest(report)
		if err = net.PostReport(report); err != nil {
			logger.Errorf("Post scheduled report error: [%s]", err.Error())
		}
	}
}

func watchOSSignal(c *cron.Cron, apiSrv *api.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	<-c.Stop().Done()
	apiSrv.Stop()
}
