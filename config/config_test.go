package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Equal(t, err, nil)
	assert.Equal(t, cfg, Default())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[bench]
size = 5000
trials = 20
algorithm = 2
seed = 42
verify = true
schedule = "0 */5 * * * *"

[server]
http_port = 9090
allow_origins = ["http://localhost:3000"]

[net]
webhook = "http://localhost:8088/report"

[log]
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	assert.Equal(t, err, nil)
	assert.Equal(t, cfg.Bench.Size, 5000)
	assert.Equal(t, cfg.Bench.Trials, 20)
	assert.Equal(t, cfg.Bench.Algorithm, 2)
	assert.Equal(t, cfg.Bench.Seed, uint64(42))
	assert.Equal(t, cfg.Bench.Verify, true)
	assert.Equal(t, cfg.Bench.Threshold, 11)
	assert.Equal(t, cfg.Bench.Schedule, "0 */5 * * * *")
	assert.Equal(t, cfg.Server.HttpPort, 9090)
	assert.Equal(t, cfg.Server.AllowOrigins, []string{"http://localhost:3000"})
	assert.Equal(t, cfg.Net.Webhook, "http://localhost:8088/report")
	assert.Equal(t, cfg.Net.TimeoutSeconds, 10)
	assert.Equal(t, cfg.Log.Level, "debug")
	assert.Equal(t, cfg.Log.File, "kselect.log")
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[bench\nsize = "), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	assert.NotEqual(t, err, nil)
}
