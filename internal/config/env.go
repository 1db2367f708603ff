package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the file configuration.
const (
	EnvInputDir  = "BASESTATS_INPUT_DIR"
	EnvOutput    = "BASESTATS_OUTPUT"
	EnvLogLevel  = "BASESTATS_LOG_LEVEL"
	EnvLogFormat = "BASESTATS_LOG_FORMAT"
)

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). A missing file is not an error; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides fields from the process environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvInputDir); v != "" {
		c.Input.Dir = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}
