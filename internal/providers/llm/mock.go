package llm

import (
	"context"
	"sync"

	"github.com/example/news-agent/internal/models"
	"github.com/example/news-agent/internal/tools"
)

// MockClient is used in tests and for keyless local runs. Responses are
// consumed in order; once exhausted it falls back to a canned reply.
type MockClient struct {
	mu        sync.Mutex
	Responses []*Completion
	Calls     [][]models.Message
	Err       error
}

func (m *MockClient) ChatCompletion(ctx context.Context, messages []models.Message, defs []tools.Definition) (*Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]models.Message, len(messages))
	copy(snapshot, messages)
	m.Calls = append(m.Calls, snapshot)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) == 0 {
		return &Completion{Content: "I'm a mock news agent. Tell me your preferred topics and I'll pretend to fetch news."}, nil
	}
	next := m.Responses[0]
	m.Responses = m.Responses[1:]
	return next, nil
}
