// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/justestif/go-mood-to-music/internal/llm"
)

// Mood classification strategies.
const (
	StrategyAuto    = "auto"    // LLM when a key is configured, keywords otherwise
	StrategyLLM     = "llm"     // LLM, degrading to the neutral profile
	StrategyKeyword = "keyword" // keyword matching only
)

// ErrInvalidStrategy is returned for an unknown MOOD_STRATEGY.
var ErrInvalidStrategy = errors.New("invalid mood strategy")

// Config holds all runtime settings.
type Config struct {
	Addr     string        `yaml:"addr" env:"ADDR" env-default:"127.0.0.1:5000"`
	Port     string        `yaml:"port" env:"PORT"`
	Strategy string        `yaml:"strategy" env:"MOOD_STRATEGY" env-default:"auto"`
	LogLevel string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CACHE_TTL" env-default:"24h"`

	// HistoryRetention is how long stored analyses are kept. Zero keeps them forever.
	HistoryRetention time.Duration `yaml:"history_retention" env:"HISTORY_RETENTION" env-default:"2160h"`

	LLM      LLMConfig      `yaml:"llm"`
	Spotify  SpotifyConfig  `yaml:"spotify"`
	LastFM   LastFMConfig   `yaml:"lastfm"`
	Database DatabaseConfig `yaml:"database"`
}

// LLMConfig selects and authenticates the language model provider.
type LLMConfig struct {
	Provider      string        `yaml:"provider" env:"LLM_PROVIDER"`
	Model         string        `yaml:"model" env:"LLM_MODEL"`
	OpenAIKey     string        `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenRouterKey string        `yaml:"openrouter_api_key" env:"OPENROUTER_API_KEY"`
	GeminiKey     string        `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Timeout       time.Duration `yaml:"timeout" env:"LLM_TIMEOUT" env-default:"30s"`
}

// SpotifyConfig holds client credentials for catalog access.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id" env:"SPOTIFY_ID"`
	ClientSecret string `yaml:"client_secret" env:"SPOTIFY_SECRET"`
}

// LastFMConfig holds the Last.fm API key.
type LastFMConfig struct {
	APIKey  string        `yaml:"api_key" env:"LASTFM_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env:"LASTFM_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds the PostgreSQL connection string.
type DatabaseConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// Load reads settings from path when given, then from the environment.
// Environment variables win over file values.
func Load(path string) (Config, error) {
	var cfg Config

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) normalize() error {
	cfg.Strategy = strings.ToLower(strings.TrimSpace(cfg.Strategy))
	switch cfg.Strategy {
	case "":
		cfg.Strategy = StrategyAuto
	case StrategyAuto, StrategyLLM, StrategyKeyword:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, cfg.Strategy)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	switch cfg.LLM.Provider {
	case "", llm.ProviderOpenAI, llm.ProviderOpenRouter, llm.ProviderGemini:
	default:
		return fmt.Errorf("%w: %q", llm.ErrUnknownProvider, cfg.LLM.Provider)
	}
	return nil
}

// ListenAddr returns Addr with its port replaced by Port when set.
func (cfg Config) ListenAddr() string {
	if cfg.Port == "" {
		return cfg.Addr
	}
	host, _, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		host = cfg.Addr
	}
	return net.JoinHostPort(host, cfg.Port)
}

// ResolvedProvider returns the configured LLM provider, or the first provider
// with a key when none was named. Empty means no model is available.
func (c LLMConfig) ResolvedProvider() string {
	if c.Provider != "" {
		return c.Provider
	}
	switch {
	case c.OpenAIKey != "":
		return llm.ProviderOpenAI
	case c.OpenRouterKey != "":
		return llm.ProviderOpenRouter
	case c.GeminiKey != "":
		return llm.ProviderGemini
	}
	return ""
}

// APIKey returns the key for the resolved provider.
func (c LLMConfig) APIKey() string {
	switch c.ResolvedProvider() {
	case llm.ProviderOpenAI:
		return c.OpenAIKey
	case llm.ProviderOpenRouter:
		return c.OpenRouterKey
	case llm.ProviderGemini:
		return c.GeminiKey
	}
	return ""
}

// Options converts the settings into llm.Options.
func (c LLMConfig) Options() llm.Options {
	return llm.Options{
		Provider: c.ResolvedProvider(),
		APIKey:   c.APIKey(),
		Model:    c.Model,
		Timeout:  c.Timeout,
	}
}

// SpotifyEnabled reports whether both Spotify credentials are set.
func (cfg Config) SpotifyEnabled() bool {
	return cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != ""
}
