package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured for the gemini provider.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

// NewGeminiProvider initializes a new Gemini client.
// An empty apiKey does not fail here; every Complete call reports it instead.
// opts are passed to the client after the key, e.g. to point it at another endpoint.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*GeminiProvider, error) {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	p := &GeminiProvider{modelName: modelName}
	if strings.TrimSpace(apiKey) == "" {
		return p, nil
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.client = client
	return p, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	if p.client != nil {
		p.client.Close()
	}
}

// Complete sends the system instruction and the user message to Gemini.
func (p *GeminiProvider) Complete(ctx context.Context, systemInstruction, userInstruction string) (string, error) {
	if p.client == nil {
		return "", &CompletionError{Provider: ProviderGemini, Err: &ConfigurationError{Variable: APIKeyVariable(ProviderGemini)}}
	}

	// GenerativeModel carries per-request settings; build one per call so
	// concurrent requests never share a mutable model.
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(Temperature)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}

	resp, err := model.GenerateContent(ctx, genai.Text(userInstruction))
	if err != nil {
		if reason, ok := rejectedKey(err); ok {
			return "", &CompletionError{Provider: ProviderGemini, Err: &ConfigurationError{Variable: APIKeyVariable(ProviderGemini), Reason: reason}}
		}
		return "", &CompletionError{Provider: ProviderGemini, Err: fmt.Errorf("generate content: %w", err)}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", completionErr(ProviderGemini, "no response candidates")
	}

	// A candidate without text is an empty itinerary, not a failure.
	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	return responseText.String(), nil
}

// rejectedKey reports whether Gemini refused the configured API key.
// Gemini answers an invalid key with 400 INVALID_ARGUMENT rather than 401.
func rejectedKey(err error) (string, bool) {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return "", false
	}
	switch {
	case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
	case gerr.Code == http.StatusBadRequest && (strings.Contains(gerr.Message, "API key") || strings.Contains(gerr.Body, "API_KEY_INVALID")):
	default:
		return "", false
	}
	return fmt.Sprintf("rejected by provider (%d %s)", gerr.Code, gerr.Message), true
}
