package config

import (
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings taken from the environment. Command line flags
// take precedence over all of them.
type Config struct {
	OrcaPath string `envconfig:"ORCA_PATH" default:""`
	Scratch  string `envconfig:"ORCAPROP_SCRATCH" default:""`
	Nice     int    `envconfig:"ORCAPROP_NICE" default:"10"`
	NProcs   int    `envconfig:"ORCAPROP_NPROCS" default:"1"`
	LogLevel string `envconfig:"ORCAPROP_LOG_LEVEL" default:"info"`
}

// New reads the configuration from the environment.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OrcaCommand returns the ORCA executable in OrcaPath, or an empty string
// if OrcaPath is not set.
func (c *Config) OrcaCommand() string {
	if c.OrcaPath == "" {
		return ""
	}
	return filepath.Join(c.OrcaPath, "orca")
}
