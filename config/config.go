package config

import (
	"errors"
	"io/fs"

	"github.com/BurntSushi/toml"
)

const DefaultPath = "./config.toml"

type BenchConfig struct {
	Size      int    `toml:"size"`
	K         int    `toml:"k"`
	Trials    int    `toml:"trials"`
	Algorithm int    `toml:"algorithm"`
	Seed      uint64 `toml:"seed"`
	Threshold int    `toml:"threshold"`
	Verify    bool   `toml:"verify"`
	Schedule  string `toml:"schedule"`
}

type ServerConfig struct {
	HttpPort     int      `toml:"http_port"`
	AllowOrigins []string `toml:"allow_origins"`
}

type NetConfig struct {
	Webhook        string `toml:"webhook"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type LogConfig struct {
	Path  string `toml:"log_path"`
	File  string `toml:"log_file"`
	Level string `toml:"log_level"`
}

type Config struct {
	Bench  BenchConfig  `toml:"bench"`
	Server ServerConfig `toml:"server"`
	Net    NetConfig    `toml:"net"`
	Log    LogConfig    `toml:"log"`
}

// Default returns the configuration used when no file is present. Zero K and
// Algorithm mean size/2 and a random choice.
func Default() *Config {
	return &Config{
		Bench: BenchConfig{
			Size:      100,
			Trials:    100,
			Threshold: 11,
		},
		Server: ServerConfig{
			HttpPort: 8080,
		},
		Net: NetConfig{
			TimeoutSeconds: 10,
		},
		Log: LogConfig{
			File:  "kselect.log",
			Level: "info",
		},
	}
}

// LoadConfig decodes path over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := Default()
	if path == "" {
		path = DefaultPath
	}
	_, err := toml.DecodeFile(path, config)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return config, nil
}
