package anthropic

import (
	"context"
	"fmt"
	"strings"

	"eduease-be/pkg/llm"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultModel = "claude-sonnet-4-20250514"

// Anthropic requires max_tokens on every request.
const defaultMaxTokens = 1024

type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

var _ llm.LLMProvider = &AnthropicProvider{}

// NewAnthropicProvider talks to the public API unless baseURL is set.
func NewAnthropicProvider(apiKey, baseURL, model string) *AnthropicProvider {
	if model == "" {
		model = DefaultModel
	}
	opts := []anthropicoption.RequestOption{anthropicoption.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, anthropicoption.WithBaseURL(baseURL))
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (p *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7, Model: p.model, MaxTokens: defaultMaxTokens}, opts...)

	system, turns := llm.SplitSystem(history)
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(options.Model),
		Messages:    buildMessages(turns),
		MaxTokens:   int64(options.MaxTokens),
		Temperature: anthropic.Float(options.Temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func buildMessages(turns []llm.Message) []anthropic.MessageParam {
	params := make([]anthropic.MessageParam, 0, len(turns))
	for _, msg := range turns {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == llm.RoleAssistant {
			params = append(params, anthropic.NewAssistantMessage(block))
			continue
		}
		params = append(params, anthropic.NewUserMessage(block))
	}
	return params
}
