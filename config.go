package golingo

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ConfigFromEnv reads EngineConfig from LINGODOTDEV_* environment variables.
// Variables already set in the environment win over those in envFiles.
// Without envFiles an optional ".env" in the working directory is loaded.
func ConfigFromEnv(envFiles ...string) (EngineConfig, error) {
	if len(envFiles) == 0 {
		// A missing .env is fine
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return EngineConfig{}, fmt.Errorf("loading env files: %w", err)
	}

	var cfg EngineConfig
	if err := env.Parse(&cfg); err != nil {
		return EngineConfig{}, &ValidationError{Message: err.Error()}
	}
	return cfg, nil
}
