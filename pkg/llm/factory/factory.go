package factory

import (
	"fmt"

	"study-stream-be/pkg/llm"
	"study-stream-be/pkg/llm/ollama"
	"study-stream-be/pkg/llm/openrouter"
)

type ProviderConfig struct {
	Provider          string
	Model             string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OllamaBaseURL     string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openrouter":
		return openrouter.NewOpenRouterProvider(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.Model), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
