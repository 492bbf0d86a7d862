package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/justestif/go-mood-to-music/internal/config"
	"github.com/justestif/go-mood-to-music/internal/history"
	"github.com/justestif/go-mood-to-music/internal/llm"
	"github.com/justestif/go-mood-to-music/internal/mood"
)

func TestTextAnalyzer(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantLLM  bool
		wantMood string
	}{
		{
			name:     "auto without key uses keywords",
			cfg:      config.Config{Strategy: config.StrategyAuto},
			wantMood: "happy",
		},
		{
			name:     "keyword ignores key",
			cfg:      config.Config{Strategy: config.StrategyKeyword, LLM: config.LLMConfig{OpenAIKey: "sk-test"}},
			wantMood: "happy",
		},
		{
			name:     "llm without key falls back to neutral",
			cfg:      config.Config{Strategy: config.StrategyLLM},
			wantLLM:  true,
			wantMood: "neutral",
		},
		{
			name:    "auto with key uses llm",
			cfg:     config.Config{Strategy: config.StrategyAuto, LLM: config.LLMConfig{OpenAIKey: "sk-test"}},
			wantLLM: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := textAnalyzer(context.Background(), tt.cfg, zap.NewNop())
			require.NoError(t, err)

			la, isLLM := a.(*llm.Analyzer)
			assert.Equal(t, tt.wantLLM, isLLM)
			if isLLM {
				assert.Equal(t, tt.cfg.LLM.APIKey() != "", la.Configured())
			}

			if tt.wantMood != "" {
				got, _, err := a.Analyze(context.Background(), "what a great day")
				require.NoError(t, err)
				assert.Equal(t, tt.wantMood, got.PrimaryMood)
			}
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	a, err := build(context.Background(), config.Config{Strategy: config.StrategyKeyword}, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	_, isMemory := a.store.(*history.MemoryStore)
	assert.True(t, isMemory)
	assert.Nil(t, a.database)

	resp, err := a.service.AnalyzeText(context.Background(), "feeling calm")
	require.NoError(t, err)
	assert.Equal(t, mood.SourceKeyword, resp.Source)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(resp))
	assert.Contains(t, buf.String(), `"primary_mood":"calm"`)

	assert.NoError(t, a.maintain(context.Background(), config.Config{HistoryRetention: 1}))
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	log, err = newLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}
