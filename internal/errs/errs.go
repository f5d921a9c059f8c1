package errs

import "fmt"

// ConfigurationError reports a missing credential or setting. It is fatal at
// startup and also returned on first tool use if a key disappears from the
// environment.
type ConfigurationError struct {
	Name string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not set in environment variables", e.Name)
}

// ProviderError reports a non-success HTTP status from an upstream provider,
// carrying the status and the raw response body.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: HTTP error occurred: %d - %s", e.Provider, e.StatusCode, e.Body)
}

// TransportError reports a network-level failure (connection, timeout).
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request error occurred: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ArgumentError reports malformed tool-call arguments emitted by the model.
type ArgumentError struct {
	Tool string
	Err  error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %q: %v", e.Tool, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }
