package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/example/news-agent/internal/errs"
)

// NewFromEnv returns a Client based on environment variables.
// Supported providers:
// - LLM_PROVIDER=openai|anthropic|gemini|mock (default openai)
// - For OpenAI:    OPENAI_API_KEY, optional OPENAI_API_BASE, optional LLM_MODEL
// - For Anthropic: ANTHROPIC_API_KEY, optional LLM_MODEL
// - For Gemini:    GOOGLE_API_KEY, optional LLM_MODEL (requires the `gemini` build tag)
// A missing key is a ConfigurationError: the caller is expected to fail fast.
func NewFromEnv() (Client, error) {
	prov := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	switch prov {
	case "", "openai":
		key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		if key == "" {
			return nil, &errs.ConfigurationError{Name: "OPENAI_API_KEY"}
		}
		base := strings.TrimRight(os.Getenv("OPENAI_API_BASE"), "/")
		return NewOpenAIClient(key, base, getModelWithDefault("LLM_MODEL", "gpt-4o-mini")), nil
	case "anthropic":
		key := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
		if key == "" {
			return nil, &errs.ConfigurationError{Name: "ANTHROPIC_API_KEY"}
		}
		return &AnthropicClient{APIKey: key, Model: getModelWithDefault("LLM_MODEL", "claude-3-5-sonnet-latest")}, nil
	case "gemini":
		key := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		if key == "" {
			return nil, &errs.ConfigurationError{Name: "GOOGLE_API_KEY"}
		}
		return newGeminiClient(key, getModelWithDefault("LLM_MODEL", "gemini-1.5-flash"))
	case "mock":
		return &MockClient{}, nil
	}
	return nil, fmt.Errorf("unknown LLM_PROVIDER %q", prov)
}

func getModelWithDefault(envKey, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return def
}
