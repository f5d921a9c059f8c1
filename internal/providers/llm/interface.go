package llm

import (
	"context"

	"github.com/example/news-agent/internal/models"
	"github.com/example/news-agent/internal/tools"
)

// Completion is one chat-completion response: assistant text and/or a list
// of requested tool calls.
type Completion struct {
	Content   string
	ToolCalls []models.ToolCall
}

// Client is the provider boundary used by the orchestrator. Tool choice is
// always automatic: the model alone decides whether tools run.
type Client interface {
	ChatCompletion(ctx context.Context, messages []models.Message, defs []tools.Definition) (*Completion, error)
}
