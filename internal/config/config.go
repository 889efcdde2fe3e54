// Package config loads the environment defaults of the project-merge CLI.
//
// Every value here has a matching command-line flag; the environment only
// changes the flag's default, so an explicit flag always wins.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-provided defaults.
type Config struct {
	// PlaceVisually makes imports append a stage-placement script.
	PlaceVisually bool `env:"PROJECT_MERGE_PLACE_VISUALLY" envDefault:"false"`

	// PlaceX and PlaceY are the default stage position for placed imports.
	PlaceX int `env:"PROJECT_MERGE_PLACE_X" envDefault:"0"`
	PlaceY int `env:"PROJECT_MERGE_PLACE_Y" envDefault:"0"`

	// Verbose enables progress output on stderr.
	Verbose bool `env:"PROJECT_MERGE_VERBOSE"`

	// JSON switches command output to JSON.
	JSON bool `env:"PROJECT_MERGE_JSON"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
