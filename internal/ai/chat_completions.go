package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const (
	groqEndpoint   = "https://api.groq.com/openai/v1/chat/completions"
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"

	// DefaultGroqModel is used when no model is configured for the groq provider.
	DefaultGroqModel = "llama-3.3-70b-versatile"
	// DefaultOpenAIModel is used when no model is configured for the openai provider.
	DefaultOpenAIModel = "gpt-4o-mini"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatCompletionsProvider implements LLMProvider for OpenAI-compatible
// chat completions endpoints (Groq and OpenAI).
type ChatCompletionsProvider struct {
	name      string
	endpoint  string
	apiKeyVar string
	apiKey    string
	model     string
	client    *http.Client
}

// NewGroqProvider returns a provider for Groq's OpenAI-compatible API.
func NewGroqProvider(apiKey, model string) *ChatCompletionsProvider {
	if model == "" {
		model = DefaultGroqModel
	}
	return &ChatCompletionsProvider{
		name:      ProviderGroq,
		endpoint:  groqEndpoint,
		apiKeyVar: APIKeyVariable(ProviderGroq),
		apiKey:    apiKey,
		model:     model,
		client:    http.DefaultClient,
	}
}

// NewOpenAIProvider returns a provider for the OpenAI chat completions API.
func NewOpenAIProvider(apiKey, model string) *ChatCompletionsProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &ChatCompletionsProvider{
		name:      ProviderOpenAI,
		endpoint:  openAIEndpoint,
		apiKeyVar: APIKeyVariable(ProviderOpenAI),
		apiKey:    apiKey,
		model:     model,
		client:    http.DefaultClient,
	}
}

// WithEndpoint points the provider at another OpenAI-compatible server.
func (p *ChatCompletionsProvider) WithEndpoint(endpoint string, client *http.Client) *ChatCompletionsProvider {
	cp := *p
	cp.endpoint = endpoint
	if client != nil {
		cp.client = client
	}
	return &cp
}

// Close is a no-op; the provider holds no resources beyond the shared HTTP client.
func (p *ChatCompletionsProvider) Close() {}

// Complete sends the system and user messages and returns the assistant reply.
func (p *ChatCompletionsProvider) Complete(ctx context.Context, systemInstruction, userInstruction string) (string, error) {
	if strings.TrimSpace(p.apiKey) == "" {
		return "", &CompletionError{Provider: p.name, Err: &ConfigurationError{Variable: p.apiKeyVar}}
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: userInstruction},
		},
		Temperature: Temperature,
	})
	if err != nil {
		return "", completionErr(p.name, "marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", completionErr(p.name, "build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", completionErr(p.name, "do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", completionErr(p.name, "read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &CompletionError{Provider: p.name, Err: &ConfigurationError{Variable: p.apiKeyVar, Reason: "rejected by provider (" + resp.Status + ")"}}
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", completionErr(p.name, "api error: %s", resp.Status)
		}
		return "", completionErr(p.name, "unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return "", completionErr(p.name, "api error: %s", cr.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", completionErr(p.name, "api error: %s", resp.Status)
	}
	if len(cr.Choices) == 0 {
		return "", completionErr(p.name, "API returned empty choices array (raw: %s)", body)
	}
	return cr.Choices[0].Message.Content, nil
}
