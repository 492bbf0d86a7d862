package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterReferer = "http://localhost:5000"
	openRouterTitle   = "Mood-to-Music Recommender"
)

// openAICompleter talks to any OpenAI-compatible chat completions API.
type openAICompleter struct {
	client      *openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

func newOpenAICompleter(opts Options, openRouter bool) *openAICompleter {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithRequestTimeout(opts.Timeout),
		option.WithMaxRetries(1),
	}

	baseURL := opts.BaseURL
	if baseURL == "" && openRouter {
		baseURL = openRouterBaseURL
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	if openRouter {
		reqOpts = append(reqOpts,
			option.WithHeader("HTTP-Referer", openRouterReferer),
			option.WithHeader("X-Title", openRouterTitle),
		)
	}

	client := openai.NewClient(reqOpts...)
	return &openAICompleter{
		client:      &client,
		model:       opts.Model,
		maxTokens:   int64(opts.MaxTokens),
		temperature: opts.Temperature,
	}
}

// Complete sends one chat completion request.
func (c *openAICompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}
