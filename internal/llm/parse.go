package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/justestif/go-mood-to-music/internal/mood"
)

// ErrEmptyReply is returned when the model produced no content.
var ErrEmptyReply = errors.New("empty model reply")

// ParseAnalysis extracts a mood analysis from a model reply. Markdown code
// fences and any prose around the JSON object are ignored.
func ParseAnalysis(raw string) (mood.Analysis, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return mood.Analysis{}, ErrEmptyReply
	}

	switch {
	case strings.HasPrefix(clean, "```json"):
		clean = strings.TrimPrefix(clean, "```json")
	case strings.HasPrefix(clean, "```"):
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(clean), "```"))

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return mood.Analysis{}, fmt.Errorf("no JSON object in reply")
	}
	clean = clean[start : end+1]

	var a mood.Analysis
	if err := json.Unmarshal([]byte(clean), &a); err != nil {
		return mood.Analysis{}, fmt.Errorf("decoding analysis: %w", err)
	}

	return mood.Normalize(a), nil
}
