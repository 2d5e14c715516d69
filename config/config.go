package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the process-wide configuration. It is loaded once at startup
// and handed to components explicitly; nothing reads the environment after
// Load returns.
type Config struct {
	Addr      string `json:"addr"`      // listen address, e.g. ":5000"
	StaticDir string `json:"staticDir"` // directory served at /
	ImagesDir string `json:"imagesDir"` // directory served at /images/

	TemplatePath  string `json:"templatePath,omitempty"`  // layout catalog; empty = embedded default
	FallbackImage string `json:"fallbackImage,omitempty"` // placeholder asset for the resolver

	UnsplashAccessKey string `json:"unsplashAccessKey,omitempty"`
	SearchTimeoutSec  int    `json:"searchTimeoutSec"` // image search request bound
	FetchTimeoutSec   int    `json:"fetchTimeoutSec"`  // image download bound

	APIKey    string `json:"apiKey,omitempty"` // LLM credential
	BaseURL   string `json:"baseUrl,omitempty"`
	ModelName string `json:"modelName"`
	MaxTokens int    `json:"maxTokens"`

	LogDir      string `json:"logDir"`
	DetailedLog bool   `json:"detailedLog"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Addr:             ":5000",
		StaticDir:        "static",
		ImagesDir:        "assets/images",
		FallbackImage:    "assets/images/placeholder.jpg",
		SearchTimeoutSec: 10,
		FetchTimeoutSec:  15,
		ModelName:        "gpt-4o-2024-08-06",
		MaxTokens:        8192,
		LogDir:           "logs",
	}
}

// Load reads the config file at path (missing file is not an error) and
// applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// keep defaults
		case err != nil:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.SearchTimeoutSec <= 0 {
		cfg.SearchTimeoutSec = 10
	}
	if cfg.FetchTimeoutSec <= 0 {
		cfg.FetchTimeoutSec = 15
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DECKGEN_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("UNSPLASH_ACCESS_KEY"); v != "" {
		cfg.UnsplashAccessKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("DECKGEN_MODEL"); v != "" {
		cfg.ModelName = v
	}
	if v := os.Getenv("DECKGEN_TEMPLATE"); v != "" {
		cfg.TemplatePath = v
	}
}
