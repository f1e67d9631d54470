package app

import (
	"errors"
	"strings"
)

// Config holds the process-level settings an App instance is built from.
// File-level options live in the configuration file at ConfigPath.
type Config struct {
	ConfigPath string // .hcl, .yaml or .yml

	// Overrides applied on top of the configuration file. Nil means unset.
	Skip        *bool
	RuntimeHome string
	Defines     map[string]string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	for k := range cfg.Defines {
		if strings.TrimSpace(k) == "" {
			return nil, errors.New("invalid property definition: empty key")
		}
	}
	return &cfg, nil
}
