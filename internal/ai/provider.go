package ai

import (
	"context"
	"fmt"
)

// Temperature is the fixed sampling temperature: always the most likely completion.
const Temperature float32 = 0

// Supported provider names.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Settings selects and configures a completion provider. It is built once at
// startup and never mutated afterwards.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
}

// NewProvider builds the LLMProvider named by s.Provider.
func NewProvider(ctx context.Context, s Settings) (LLMProvider, error) {
	switch s.Provider {
	case ProviderGroq, "":
		return NewGroqProvider(s.APIKey, s.Model), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(s.APIKey, s.Model), nil
	case ProviderGemini:
		p, err := NewGeminiProvider(ctx, s.APIKey, s.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", s.Provider)
	}
}

// DefaultModel returns the model used by a provider when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return DefaultGeminiModel
	case ProviderOpenAI:
		return DefaultOpenAIModel
	default:
		return DefaultGroqModel
	}
}

// APIKeyVariable returns the environment variable holding the provider's credential.
func APIKeyVariable(provider string) string {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}
