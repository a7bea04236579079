package factory

import (
	"context"
	"fmt"

	"eduease-be/pkg/llm"
	"eduease-be/pkg/llm/anthropic"
	"eduease-be/pkg/llm/gemini"
	"eduease-be/pkg/llm/ollama"
	"eduease-be/pkg/llm/openai"
)

type ProviderConfig struct {
	Provider string // "openai" | "anthropic" | "gemini" | "ollama" | "huggingface"
	Model    string
	APIKey   string
	BaseURL  string
}

func NewLLMProvider(ctx context.Context, cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "openai":
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "anthropic":
		return anthropic.NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "gemini":
		return gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "huggingface":
		return openai.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
