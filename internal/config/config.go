// Package config loads CLI settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed
// into Config.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds the CLI defaults. Flags override these values.
type Config struct {
	LogLevel  string `env:"PARAMETRIC_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"PARAMETRIC_LOG_FORMAT" envDefault:"text"`
	Lang      string `env:"PARAMETRIC_LANG" envDefault:"en"`
	Output    string `env:"PARAMETRIC_OUTPUT" envDefault:"json"`
}

// Load reads dotenv files (".env" when none are given; missing files are
// skipped) without overriding variables already set, then parses the
// environment.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
