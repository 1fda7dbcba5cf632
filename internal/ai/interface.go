package ai

import (
	"context"
)

// CompletionClient sends a rendered prompt to a text-completion service.
// Implementations are configured once at startup and are safe for concurrent use.
type CompletionClient interface {
	// Complete returns the generated text for the given instructions.
	// Every failure is reported as a *CompletionError.
	Complete(ctx context.Context, systemInstruction, userInstruction string) (string, error)
}

// LLMProvider is a CompletionClient that owns releasable resources.
type LLMProvider interface {
	CompletionClient
	Close()
}
