package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv overlays environment variables onto target using its `env` struct tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}
