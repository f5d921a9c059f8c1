//go:build !gemini

package llm

import "errors"

// Default build ships without the Gemini SDK wired in. The real client is
// provided under build tag `gemini`.
func newGeminiClient(apiKey, model string) (Client, error) {
	return nil, errors.New("gemini support not compiled in; rebuild with -tags gemini")
}
