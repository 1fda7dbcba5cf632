package ai

import "fmt"

// ConfigurationError reports a missing or unusable credential.
type ConfigurationError struct {
	Variable string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration: %s is not set", e.Variable)
	}
	return fmt.Sprintf("configuration: %s: %s", e.Variable, e.Reason)
}

// CompletionError reports that the remote completion call could not be completed.
// The cause may be a network failure, a provider-side error, a malformed
// response or a *ConfigurationError.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("completion failed: %v", e.Err)
	}
	return fmt.Sprintf("%s: completion failed: %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

func completionErr(provider string, format string, args ...any) *CompletionError {
	return &CompletionError{Provider: provider, Err: fmt.Errorf(format, args...)}
}
