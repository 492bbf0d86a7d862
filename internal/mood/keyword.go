package mood

import (
	"context"
	"strings"
)

// relatedWords are checked in this order after the direct label match fails.
var relatedWords = []struct {
	label string
	words []string
}{
	{Happy, []string{"good", "great", "awesome", "wonderful", "happy", "joy", "cheerful", "positive"}},
	{Sad, []string{"bad", "terrible", "awful", "depressed", "sad", "unhappy", "down", "blue", "melancholy", "gloomy"}},
	{Excited, []string{"pumped", "energetic", "thrilled", "excited", "hyped", "pumped up", "fired up"}},
	{Calm, []string{"relaxed", "peaceful", "chill", "calm", "tranquil", "serene", "mellow"}},
	{Stressed, []string{"worried", "anxious", "overwhelmed", "stressed", "tense", "nervous", "frustrated"}},
}

var negativeWords = []string{
	"sad", "bad", "terrible", "awful", "depressed", "unhappy", "down", "blue", "melancholy",
	"gloomy", "worried", "anxious", "stressed", "tense", "nervous", "frustrated",
}

var positiveWords = []string{
	"good", "great", "awesome", "wonderful", "happy", "joy", "cheerful", "positive",
	"pumped", "energetic", "thrilled", "excited", "relaxed", "peaceful", "calm",
}

// KeywordClassifier buckets free text into one of the table moods using
// substring matching. It never fails; unmatched text is classified as happy.
type KeywordClassifier struct{}

// Classify returns the profile that best matches text.
func (KeywordClassifier) Classify(text string) Analysis {
	text = strings.ToLower(text)

	for _, label := range labels {
		if strings.Contains(text, label) {
			return mustProfile(label)
		}
	}

	for _, group := range relatedWords {
		if containsAny(text, group.words) {
			return mustProfile(group.label)
		}
	}

	// Sentiment tiebreak. Every scored word currently also appears in
	// relatedWords, so this only matters if the lists diverge.
	negative := countContained(text, negativeWords)
	positive := countContained(text, positiveWords)
	switch {
	case negative > positive:
		return mustProfile(Sad)
	case positive > negative:
		return mustProfile(Happy)
	}

	return mustProfile(Happy)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func countContained(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

// KeywordAnalyzer adapts KeywordClassifier to the Analyzer interface.
type KeywordAnalyzer struct {
	classifier KeywordClassifier
}

// NewKeywordAnalyzer creates a keyword-matching analyzer.
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Analyze classifies text by keyword matching.
func (a *KeywordAnalyzer) Analyze(_ context.Context, text string) (Analysis, Source, error) {
	if strings.TrimSpace(text) == "" {
		return Analysis{}, SourceKeyword, ErrEmptyMood
	}
	return a.classifier.Classify(text), SourceKeyword, nil
}

// TableAnalyzer treats its input as a mood label and looks it up directly.
type TableAnalyzer struct{}

// NewTableAnalyzer creates a lookup-table analyzer.
func NewTableAnalyzer() *TableAnalyzer {
	return &TableAnalyzer{}
}

// Analyze returns the profile for the label in text.
func (a *TableAnalyzer) Analyze(_ context.Context, text string) (Analysis, Source, error) {
	p, err := Lookup(text)
	return p, SourceTable, err
}

// Ensure analyzers implement Analyzer.
var (
	_ Analyzer = (*KeywordAnalyzer)(nil)
	_ Analyzer = (*TableAnalyzer)(nil)
)
