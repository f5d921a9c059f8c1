package orchestrator

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/example/news-agent/internal/errs"
	"github.com/example/news-agent/internal/models"
	"github.com/example/news-agent/internal/news"
	"github.com/example/news-agent/internal/providers/llm"
	"github.com/example/news-agent/internal/tools"
)

// systemPrompt steers the agent: preferences first, then tools. It is
// prepended to every outbound message list and never stored in the
// transcript itself.
const systemPrompt = `You are an AI-powered news agent. Your primary role is to provide users with the latest news on their preferred topics.

- First, you must collect the user's preferences: tone, format, language, style, and topics.
- If preferences are not complete, ask the user for the missing information.
- Once preferences are collected, you can fetch and summarize news using the available tools.
- Use the user's preferences to tailor your responses.`

// NewsFetcher is the slice of the news adapter the orchestrator needs.
type NewsFetcher interface {
	FetchNews(ctx context.Context, query string, numResults int) (models.NewsSearchResult, error)
}

// Conversation is the transcript plus the lock that serializes turns on it.
// One instance serves the whole process; session scoping is out of scope.
type Conversation struct {
	mu       sync.Mutex
	messages []models.Message
}

// Orchestrator owns one conversation and drives the two-round
// call/execute/recall loop against the LLM provider.
type Orchestrator struct {
	LLM  llm.Client
	News NewsFetcher

	conv Conversation
}

func New(client llm.Client, fetcher NewsFetcher) *Orchestrator {
	return &Orchestrator{LLM: client, News: fetcher}
}

// HandleChat runs one complete turn. The model alone decides whether tools
// run; the orchestrator only executes what was requested. Any failure aborts
// the turn, keeping whatever was appended before the failure point.
func (o *Orchestrator) HandleChat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	o.conv.mu.Lock()
	defer o.conv.mu.Unlock()

	o.conv.messages = append(o.conv.messages, models.Message{
		Role:    models.RoleUser,
		Content: req.Message,
	})

	catalog := tools.Definitions()
	first, err := o.LLM.ChatCompletion(ctx, o.outboundLocked(), catalog)
	if err != nil {
		return models.ChatResponse{}, err
	}

	toolsUsed := []string{}

	if len(first.ToolCalls) == 0 {
		o.conv.messages = append(o.conv.messages, models.Message{
			Role:    models.RoleAssistant,
			Content: first.Content,
		})
		return o.responseLocked(first.Content, toolsUsed, req.UserPreferences), nil
	}

	// Preserve the raw tool calls on the assistant message for traceability.
	o.conv.messages = append(o.conv.messages, models.Message{
		Role:      models.RoleAssistant,
		Content:   first.Content,
		ToolCalls: first.ToolCalls,
	})

	for _, tc := range first.ToolCalls {
		result, known, err := o.dispatch(ctx, tc)
		if err != nil {
			return models.ChatResponse{}, err
		}
		if !known {
			log.Printf("orchestrator: skipping unknown tool %q", tc.Name)
			continue
		}
		toolsUsed = append(toolsUsed, tc.Name)
		o.conv.messages = append(o.conv.messages, models.Message{
			Role:       models.RoleTool,
			Content:    result,
			ToolCallID: tc.ID,
		})
	}

	// Second round: tools stay available but nothing forces their use.
	second, err := o.LLM.ChatCompletion(ctx, o.outboundLocked(), catalog)
	if err != nil {
		return models.ChatResponse{}, err
	}

	o.conv.messages = append(o.conv.messages, models.Message{
		Role:    models.RoleAssistant,
		Content: second.Content,
	})
	return o.responseLocked(second.Content, toolsUsed, req.UserPreferences), nil
}

type fetchNewsArgs struct {
	Query      string `json:"query"`
	NumResults *int   `json:"num_results"`
}

type summarizeNewsArgs struct {
	Articles      []models.NewsArticle `json:"articles"`
	SummaryLength string               `json:"summary_length"`
}

// dispatch executes one requested tool call. The second return value is
// false for names outside the catalog; those are skipped, not failed.
func (o *Orchestrator) dispatch(ctx context.Context, tc models.ToolCall) (string, bool, error) {
	switch tc.Name {
	case tools.FetchNews:
		var args fetchNewsArgs
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return "", true, &errs.ArgumentError{Tool: tc.Name, Err: err}
		}
		// default only when the field is absent; an explicit 0 is the
		// model's request and passes through
		numResults := 5
		if args.NumResults != nil {
			numResults = *args.NumResults
		}
		result, err := o.News.FetchNews(ctx, args.Query, numResults)
		if err != nil {
			return "", true, err
		}
		b, err := json.Marshal(result)
		if err != nil {
			return "", true, err
		}
		return string(b), true, nil
	case tools.SummarizeNews:
		var args summarizeNewsArgs
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return "", true, &errs.ArgumentError{Tool: tc.Name, Err: err}
		}
		if args.SummaryLength == "" {
			args.SummaryLength = "brief"
		}
		return news.Summarize(args.Articles, args.SummaryLength), true, nil
	}
	return "", false, nil
}

// outboundLocked builds the provider-bound message list: system prompt first,
// then the stored transcript. Caller holds the conversation lock.
func (o *Orchestrator) outboundLocked() []models.Message {
	out := make([]models.Message, 0, len(o.conv.messages)+1)
	out = append(out, models.Message{Role: models.RoleSystem, Content: systemPrompt})
	out = append(out, o.conv.messages...)
	return out
}

func (o *Orchestrator) responseLocked(message string, toolsUsed []string, prefs models.UserPreferences) models.ChatResponse {
	history := make([]models.Message, len(o.conv.messages))
	copy(history, o.conv.messages)
	return models.ChatResponse{
		Message:             message,
		ConversationHistory: history,
		UserPreferences:     prefs,
		ToolsUsed:           toolsUsed,
	}
}

// Messages returns a copy of the stored transcript.
func (o *Orchestrator) Messages() []models.Message {
	o.conv.mu.Lock()
	defer o.conv.mu.Unlock()
	out := make([]models.Message, len(o.conv.messages))
	copy(out, o.conv.messages)
	return out
}

// Reset clears the conversation unconditionally.
func (o *Orchestrator) Reset() {
	o.conv.mu.Lock()
	o.conv.messages = nil
	o.conv.mu.Unlock()
}
