// Package config loads service settings from SHEETKEEPER_* environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every env tag of a config struct.
const EnvPrefix = "SHEETKEEPER_"

// ParseEnv fills target from the environment. A field tagged `env:"SHEET_ADDR"`
// is read from SHEETKEEPER_SHEET_ADDR.
func ParseEnv(target any) error {
	return ParseEnvWith(target, nil)
}

// ParseEnvWith is ParseEnv with an explicit environment map, used by tests
// and by callers that layer config files over the process environment.
func ParseEnvWith(target any, environment map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
