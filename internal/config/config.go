// Package config loads the gitlanes configuration file.
//
// Configuration lives at ~/.config/gitlanes/config.toml (or wherever
// os.UserConfigDir points) and holds defaults the CLI flags can override:
//
//	max-commits = 2000
//	protected-branches = ["main", "release/*"]
//
//	[serve]
//	addr = ":8440"
//	redis-addr = "localhost:6379"
//	mongo-uri = "mongodb://localhost:27017"
//
// A missing file is not an error; every field has a usable default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration.
type Config struct {
	// MaxCommits caps how much history the executor asks git for.
	MaxCommits int `toml:"max-commits"`
	// ProtectedBranches are exact names or "*" globs marking branches
	// that downstream tooling must not rewrite.
	ProtectedBranches []string `toml:"protected-branches"`

	Serve ServeConfig `toml:"serve"`
}

// ServeConfig configures the serve command.
type ServeConfig struct {
	Addr string `toml:"addr"`
	// RedisAddr enables the Redis layout cache when set.
	RedisAddr string `toml:"redis-addr"`
	// MongoURI enables the snapshot store when set.
	MongoURI string `toml:"mongo-uri"`
	// MongoDatabase defaults to "gitlanes".
	MongoDatabase string `toml:"mongo-database"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		MaxCommits: 2000,
		Serve: ServeConfig{
			Addr:          ":8440",
			MongoDatabase: "gitlanes",
		},
	}
}

// Path returns the default configuration file location.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "gitlanes", "config.toml"), nil
}

// Load reads the configuration at path, falling back to defaults for a
// missing file. An empty path means the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Serve.MongoDatabase == "" {
		cfg.Serve.MongoDatabase = "gitlanes"
	}
	return cfg, nil
}
