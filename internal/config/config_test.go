package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/go-mood-to-music/internal/llm"
)

// clearEnv unsets variables without defaults so the host environment
// does not leak into tests. t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "MOOD_STRATEGY", "LLM_PROVIDER", "LLM_MODEL",
		"OPENAI_API_KEY", "OPENROUTER_API_KEY", "GEMINI_API_KEY",
		"SPOTIFY_ID", "SPOTIFY_SECRET", "LASTFM_API_KEY", "DATABASE_URL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5000", cfg.ListenAddr())
	assert.Equal(t, StrategyAuto, cfg.Strategy)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.ResolvedProvider())
	assert.False(t, cfg.SpotifyEnabled())
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("MOOD_STRATEGY", "Keyword")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("SPOTIFY_ID", "id")
	t.Setenv("SPOTIFY_SECRET", "secret")
	t.Setenv("CACHE_TTL", "1h")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr())
	assert.Equal(t, StrategyKeyword, cfg.Strategy)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.ResolvedProvider())
	assert.Equal(t, "g-key", cfg.LLM.APIKey())
	assert.True(t, cfg.SpotifyEnabled())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("LASTFM_API_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
addr: 0.0.0.0:9000
strategy: llm
llm:
  provider: openrouter
  openrouter_api_key: or-key
lastfm:
  api_key: from-file
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr())
	assert.Equal(t, StrategyLLM, cfg.Strategy)
	assert.Equal(t, llm.ProviderOpenRouter, cfg.LLM.ResolvedProvider())
	assert.Equal(t, "or-key", cfg.LLM.APIKey())
	assert.Equal(t, "from-env", cfg.LastFM.APIKey, "environment wins over file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "unknown strategy", env: map[string]string{"MOOD_STRATEGY": "vibes"}, wantErr: ErrInvalidStrategy},
		{name: "unknown provider", env: map[string]string{"LLM_PROVIDER": "claude"}, wantErr: llm.ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolvedProvider(t *testing.T) {
	tests := []struct {
		name string
		cfg  LLMConfig
		want string
		key  string
	}{
		{name: "none", cfg: LLMConfig{}, want: "", key: ""},
		{name: "openai first", cfg: LLMConfig{OpenAIKey: "a", GeminiKey: "g"}, want: llm.ProviderOpenAI, key: "a"},
		{name: "openrouter", cfg: LLMConfig{OpenRouterKey: "o"}, want: llm.ProviderOpenRouter, key: "o"},
		{name: "explicit wins", cfg: LLMConfig{Provider: llm.ProviderGemini, OpenAIKey: "a", GeminiKey: "g"}, want: llm.ProviderGemini, key: "g"},
		{name: "explicit without key", cfg: LLMConfig{Provider: llm.ProviderGemini, OpenAIKey: "a"}, want: llm.ProviderGemini, key: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolvedProvider())
			assert.Equal(t, tt.key, tt.cfg.APIKey())
			assert.Equal(t, tt.key, tt.cfg.Options().APIKey)
		})
	}
}

func TestListenAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:5000", Config{Addr: "127.0.0.1:5000"}.ListenAddr())
	assert.Equal(t, "127.0.0.1:3000", Config{Addr: "127.0.0.1:5000", Port: "3000"}.ListenAddr())
	assert.Equal(t, ":3000", Config{Addr: ":5000", Port: "3000"}.ListenAddr())
}
