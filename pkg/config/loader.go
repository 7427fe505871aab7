package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills the given struct from environment variables according to its
// `env` tags.
//
// Example:
//
//	type Config struct {
//	    HTTPPort       int    `env:"HTTP_PORT" envDefault:"8080"`
//	    WeatherAPIKey  string `env:"OPENWEATHER_API_KEY"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
