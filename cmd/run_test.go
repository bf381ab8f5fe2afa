package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"kselect/api"
	"kselect/bench"
	"kselect/config"
	"kselect/net"
)

func TestApplyRunArgs(t *testing.T) {
	cmd := newRunCmd()
	assert.Equal(t, cmd.Flags().Parse([]string{"--trials", "7", "--seed", "3", "--verify"}), nil)

	cfg := config.Default().Bench
	opts := &runOptions{trials: 7, seed: 3, verify: true, format: "table"}
	err := applyRunArgs(cmd, &cfg, opts, []string{"500", "2"})
	assert.Equal(t, err, nil)
	assert.Equal(t, cfg.Size, 500)
	assert.Equal(t, cfg.Algorithm, int(bench.AlgorithmTopK))
	assert.Equal(t, cfg.Trials, 7)
	assert.Equal(t, cfg.Seed, uint64(3))
	assert.Equal(t, cfg.Verify, true)
	assert.Equal(t, cfg.K, 0)
}

func TestApplyRunArgs_Errors(t *testing.T) {
	cmd := newRunCmd()
	cfg := config.Default().Bench

	err := applyRunArgs(cmd, &cfg, &runOptions{format: "plain"}, []string{"many"})
	assert.Equal(t, errors.Is(err, bench.ErrInvalidSize), true)

	err = applyRunArgs(cmd, &cfg, &runOptions{format: "plain"}, []string{"10", "9"})
	assert.Equal(t, errors.Is(err, bench.ErrInvalidAlgorithm), true)

	err = applyRunArgs(cmd, &cfg, &runOptions{format: "xml"}, nil)
	assert.NotEqual(t, err, nil)
}

func TestRunBench(t *testing.T) {
	cfg := config.Default().Bench
	cfg.Trials = 3
	cfg.Seed = 1
	cfg.Algorithm = int(bench.AlgorithmSelect)

	var out bytes.Buffer
	err := runBench(context.Background(), &out, &cfg, &runOptions{format: "plain"})
	assert.Equal(t, err, nil)
	assert.Equal(t, strings.Contains(out.String(), "Trial 3: "), true)
	assert.Equal(t, strings.Contains(out.String(), "Choice: 1\nTime: "), true)

	out.Reset()
	err = runBench(context.Background(), &out, &cfg, &runOptions{format: "table", compare: true})
	assert.Equal(t, err, nil)
	assert.Equal(t, strings.Contains(out.String(), "select"), true)
	assert.Equal(t, strings.Contains(out.String(), "topk"), true)

	out.Reset()
	err = runBench(context.Background(), &out, &cfg, &runOptions{format: "json"})
	assert.Equal(t, err, nil)
	assert.Equal(t, strings.Contains(out.String(), `"select"`), true)
}

func TestScheduleBench(t *testing.T) {
	cfg := config.Default()
	cfg.Bench.Schedule = "not a spec"
	_, err := scheduleBench(cfg, nil)
	assert.NotEqual(t, err, nil)

	cfg.Bench.Schedule = "*/30 * * * * *"
	c, err := scheduleBench(cfg, nil)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(c.Entries()), 1)

	cfg.Bench.Schedule = ""
	c, err = scheduleBench(cfg, nil)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(c.Entries()), 0)
}

func TestBenchJob(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer webhook.Close()
	net.Init(&config.NetConfig{Webhook: webhook.URL, TimeoutSeconds: 1})
	defer net.Init(&config.NetConfig{})

	cfg := config.Default()
	cfg.Bench.Trials = 2
	cfg.Bench.Seed = 5
	apiSrv := api.New(&cfg.Server, &cfg.Bench)

	core, logs := observer.New(zapcore.InfoLevel)
	benchJob(&cfg.Bench, apiSrv, zap.New(core).Sugar())()

	assert.Equal(t, apiSrv.Latest() != nil, true)
	entries := logs.FilterMessageSnippet("Post scheduled report error").All()
	assert.Equal(t, len(entries), 1)
	assert.Equal(t, entries[0].Level, zapcore.ErrorLevel)

	cfg.Bench.Size = 0
	benchJob(&cfg.Bench, apiSrv, zap.New(core).Sugar())()
	assert.Equal(t, logs.FilterMessageSnippet("Scheduled benchmark error").Len(), 1)
}
