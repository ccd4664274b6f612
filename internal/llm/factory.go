package llm

import (
	"fmt"

	"docanalyzer/internal/config"
	"docanalyzer/internal/llm/claude"
	"docanalyzer/internal/llm/gemini"
	"docanalyzer/internal/llm/openai"
	"docanalyzer/internal/port"
)

// ProviderFactory is a function that creates a ModelClient from the LLM config.
type ProviderFactory func(cfg *config.LLMConfig) (port.ModelClient, error)

// registry of model provider factories. Additional providers can be added via RegisterProvider.
var providers = map[string]ProviderFactory{
	"gemini": func(cfg *config.LLMConfig) (port.ModelClient, error) {
		return gemini.NewClient(cfg), nil
	},
	"openai": func(cfg *config.LLMConfig) (port.ModelClient, error) {
		return openai.NewClient(cfg), nil
	},
	"claude": func(cfg *config.LLMConfig) (port.ModelClient, error) {
		return claude.NewClient(cfg), nil
	},
}

// RegisterProvider registers a model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewClient creates a ModelClient for cfg.Provider using the registered factory.
func NewClient(cfg *config.LLMConfig) (port.ModelClient, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
