package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiCompleter uses the Gemini API through the genai SDK.
type geminiCompleter struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

func newGeminiCompleter(ctx context.Context, opts Options) (*geminiCompleter, error) {
	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &geminiCompleter{
		client:      client,
		model:       opts.Model,
		maxTokens:   int32(opts.MaxTokens),
		temperature: float32(opts.Temperature),
	}, nil
}

// Complete generates a single reply.
func (c *geminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
