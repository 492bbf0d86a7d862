// Package llm classifies mood text with a hosted language model.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/justestif/go-mood-to-music/internal/mood"
)

// Supported providers.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Request defaults.
const (
	DefaultMaxTokens   = 300
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second
)

// SystemMessage primes the model for classification.
const SystemMessage = "You are a music mood analyzer. Provide accurate, search-friendly mood classifications."

// Sentinel errors.
var (
	// ErrMissingAPIKey is returned when a provider is selected without a key.
	ErrMissingAPIKey = errors.New("missing LLM API key")

	// ErrUnknownProvider is returned for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown LLM provider")
)

// Completer sends a single system+user exchange to a model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Options configures a Completer.
type Options struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string // overrides the provider endpoint, used in tests
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenRouter:
		return "openai/gpt-3.5-turbo"
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return "gpt-3.5-turbo"
	}
}

// NewCompleter creates a Completer for the configured provider.
func NewCompleter(ctx context.Context, opts Options) (Completer, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.Model == "" {
		opts.Model = DefaultModel(opts.Provider)
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	switch opts.Provider {
	case ProviderOpenAI, "":
		return newOpenAICompleter(opts, false), nil
	case ProviderOpenRouter:
		return newOpenAICompleter(opts, true), nil
	case ProviderGemini:
		return newGeminiCompleter(ctx, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}

// BuildPrompt asks the model for a JSON analysis of the user's input.
func BuildPrompt(userInput string) string {
	return fmt.Sprintf(`
Analyze the following user input and provide mood classification and description:

User Input: %q

Please respond in the following JSON format:
{
    "primary_mood": "main emotion (e.g., happy, sad, stressed, excited, calm, energetic, melancholic, hopeful)",
    "secondary_mood": "secondary emotion or nuance",
    "mood_description": "one-line description of the emotional state",
    "energy_level": "low/medium/high",
    "tempo_preference": "slow/medium/fast",
    "genre_suggestions": ["genre1", "genre2", "genre3"],
    "mood_keywords": ["keyword1", "keyword2", "keyword3", "keyword4"]
}

Focus on creating search-friendly terms that would work well for finding music playlists.
`, strings.TrimSpace(userInput))
}

// Analyzer classifies mood text with a Completer. It degrades to the
// neutral profile when the model is unavailable or replies with garbage.
type Analyzer struct {
	completer Completer
	log       *zap.Logger
}

// NewAnalyzer creates an LLM-backed analyzer. A nil completer is allowed
// and means every request gets the fallback profile.
func NewAnalyzer(completer Completer, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{completer: completer, log: log}
}

// Configured reports whether a model is available.
func (a *Analyzer) Configured() bool {
	return a.completer != nil
}

// Analyze implements mood.Analyzer.
func (a *Analyzer) Analyze(ctx context.Context, text string) (mood.Analysis, mood.Source, error) {
	if strings.TrimSpace(text) == "" {
		return mood.Analysis{}, mood.SourceLLM, mood.ErrEmptyMood
	}

	if a.completer == nil {
		a.log.Debug("no LLM configured, using fallback profile")
		return mood.Fallback(), mood.SourceFallback, nil
	}

	raw, err := a.completer.Complete(ctx, SystemMessage, BuildPrompt(text))
	if err != nil {
		a.log.Warn("LLM request failed, using fallback profile", zap.Error(err))
		return mood.Fallback(), mood.SourceFallback, nil
	}

	analysis, err := ParseAnalysis(raw)
	if err != nil {
		a.log.Warn("LLM reply not parseable, using fallback profile",
			zap.Error(err),
			zap.String("reply", truncate(raw, 200)))
		return mood.Fallback(), mood.SourceFallback, nil
	}

	return analysis, mood.SourceLLM, nil
}

// Ping sends a trivial prompt to verify credentials and connectivity.
func Ping(ctx context.Context, c Completer) (string, error) {
	reply, err := c.Complete(ctx, "", "Say 'Hello, mood analyzer is working!'")
	if err != nil {
		return "", fmt.Errorf("pinging LLM: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

var _ mood.Analyzer = (*Analyzer)(nil)
