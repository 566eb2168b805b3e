package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the server configuration, resolved from the environment
// with an optional .env file.
type Config struct {
	Port            string
	GeminiAPIKey    string
	AnalysisModel   string
	GenerationModel string
}

const (
	defaultPort            = "8080"
	defaultAnalysisModel   = "gemini-2.5-flash"
	defaultGenerationModel = "gemini-2.5-flash-image-preview"
)

// Load reads configuration from the environment. A missing .env file is
// not an error; a missing API key is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            envOr("PORT", defaultPort),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		AnalysisModel:   envOr("ANALYSIS_MODEL", defaultAnalysisModel),
		GenerationModel: envOr("GENERATION_MODEL", defaultGenerationModel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
