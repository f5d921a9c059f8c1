package orchestrator_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/news-agent/internal/errs"
	"github.com/example/news-agent/internal/models"
	"github.com/example/news-agent/internal/news"
	"github.com/example/news-agent/internal/orchestrator"
	"github.com/example/news-agent/internal/providers/llm"
)

type stubFetcher struct {
	lastQuery string
	lastNum   int
	result    models.NewsSearchResult
	err       error
}

func (s *stubFetcher) FetchNews(ctx context.Context, query string, numResults int) (models.NewsSearchResult, error) {
	s.lastQuery = query
	s.lastNum = numResults
	if s.err != nil {
		return models.NewsSearchResult{}, s.err
	}
	return s.result, nil
}

func chat(t *testing.T, orch *orchestrator.Orchestrator, message string) models.ChatResponse {
	t.Helper()
	resp, err := orch.HandleChat(context.Background(), models.ChatRequest{Message: message})
	require.NoError(t, err)
	return resp
}

func TestHandleChatNoToolCalls(t *testing.T) {
	mock := &llm.MockClient{Responses: []*llm.Completion{
		{Content: "What topics are you interested in?"},
	}}
	orch := orchestrator.New(mock, &stubFetcher{})

	resp := chat(t, orch, "hello")

	assert.Equal(t, "What topics are you interested in?", resp.Message)
	assert.Empty(t, resp.ToolsUsed)
	require.Len(t, resp.ConversationHistory, 2)
	assert.Equal(t, models.RoleUser, resp.ConversationHistory[0].Role)
	assert.Equal(t, models.RoleAssistant, resp.ConversationHistory[1].Role)

	// exactly one LLM round when no tools were requested
	require.Len(t, mock.Calls, 1)
}

func TestHandleChatPrependsSystemPromptWithoutStoringIt(t *testing.T) {
	mock := &llm.MockClient{Responses: []*llm.Completion{{Content: "hi"}}}
	orch := orchestrator.New(mock, &stubFetcher{})

	chat(t, orch, "hello")

	require.Len(t, mock.Calls, 1)
	outbound := mock.Calls[0]
	require.NotEmpty(t, outbound)
	assert.Equal(t, models.RoleSystem, outbound[0].Role)
	assert.Contains(t, outbound[0].Content, "news agent")

	for _, msg := range orch.Messages() {
		assert.NotEqual(t, models.RoleSystem, msg.Role)
	}
}

func TestHandleChatFetchNewsFlow(t *testing.T) {
	fetcher := &stubFetcher{result: models.NewsSearchResult{
		Articles:     []models.NewsArticle{{Title: "A", URL: "u", Content: "c"}},
		Query:        "ai",
		TotalResults: 1,
	}}
	mock := &llm.MockClient{Responses: []*llm.Completion{
		{ToolCalls: []models.ToolCall{{
			ID:        "call_1",
			Name:      "fetch_news",
			Arguments: `{"query": "ai", "num_results": 3}`,
		}}},
		{Content: "Here are your headlines."},
	}}
	orch := orchestrator.New(mock, fetcher)

	resp := chat(t, orch, "latest ai news please")

	assert.Equal(t, "Here are your headlines.", resp.Message)
	assert.Equal(t, []string{"fetch_news"}, resp.ToolsUsed)
	assert.Equal(t, "ai", fetcher.lastQuery)
	assert.Equal(t, 3, fetcher.lastNum)

	// user, assistant carrying the tool calls, one tool message, final assistant
	history := resp.ConversationHistory
	require.Len(t, history, 4)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
	require.Len(t, history[1].ToolCalls, 1)
	assert.Equal(t, "call_1", history[1].ToolCalls[0].ID)
	assert.Equal(t, models.RoleTool, history[2].Role)
	assert.Equal(t, "call_1", history[2].ToolCallID)
	assert.Equal(t, models.RoleAssistant, history[3].Role)
	assert.Empty(t, history[3].ToolCalls)

	// the tool message carries the stringified search result
	var result models.NewsSearchResult
	require.NoError(t, json.Unmarshal([]byte(history[2].Content), &result))
	assert.Equal(t, "ai", result.Query)
	assert.Equal(t, 1, result.TotalResults)

	require.Len(t, mock.Calls, 2)
}

func TestHandleChatDefaultNumResults(t *testing.T) {
	fetcher := &stubFetcher{}
	mock := &llm.MockClient{Responses: []*llm.Completion{
		{ToolCalls: []models.ToolCall{{ID: "c1", Name: "fetch_news", Arguments: `{"query": "space"}`}}},
		{Content: "done"},
	}}
	orch := orchestrator.New(mock, fetcher)

	chat(t, orch, "space news")
	assert.Equal(t, 5, fetcher.lastNum)
}

func TestHandleChatExplicitZeroNumResults(t *testing.T) {
	// only an absent num_results gets the default; an explicit 0 is passed
	// through and yields an empty fetch
	fetcher := &stubFetcher{lastNum: -1}
	mock := &llm.MockClient{Responses: []*llm.Completion{
		{ToolCalls: []models.ToolCall{{ID: "c1", Name: "fetch_news", Arguments: `{"query": "space", "num_results": 0}`}}},
		{Content: "done"},
	}}
	orch := orchestrator.New(mock, fetcher)

	chat(t, orch, "space news")
	assert.Equal(t, "space", fetcher.lastQuery)
	assert.Equal(t, 0, fetcher.lastNum)
}

func TestHandleChatSummarizeNews(t *testing.T) {
	mock := &llm.MockClient{Responses: []*llm.Completion{
		{ToolCalls: []models.ToolCall{{
			ID:        "c1",
			Name:      "summarize_news",
			Arguments: `{"articles": [{"title": "T", "url": "u", "content": "some body"}]}`,
		}}},
		{Content: "summary delivered"},
	}}
	orch := orchestrator.New(mock, &stubFetcher{})

	resp := chat(t, orch, "summarize those")

	assert.Equal(t, []string{"summarize_news"}, resp.ToolsUsed)
	history := resp.ConversationHistory
	require.Len(t, history, 4)
	// default length is brief
	expected := news.Summarize([]models.NewsArticle{{Title: "T", URL: "u", Content: "some body"}}, "brief")
	assert.Equal(t, expected, history[2].Content)
}

func TestHandleChatUnknownToolSkipped(t *testing.T) {
	mock := &llm.MockClient{Responses: []*llm.Completion{
		{ToolCalls: []models.ToolCall{{ID: "c1", Name: "get_weather", Arguments: `{}`}}},
		{Content: "sorry, no weather here"},
	}}
	orch := orchestrator.New(mock, &stubFetcher{})

	resp := chat(t, orch, "weather?")

	assert.Empty(t, resp.ToolsUsed)
	// no tool message was appended and the turn did not abort
	history := resp.ConversationHistory
	require.Len(t, history, 3)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
	assert.Equal(t, models.RoleAssistant, history[2].Role)
}

func TestHandleChatMalformedArguments(t *testing.T) {
	mock := &llm.MockClient{Responses: []*llm.Completion{
		{ToolCalls: []models.ToolCall{{ID: "c1", Name: "fetch_news", Arguments: `{"query":`}}},
	}}
	orch := orchestrator.New(mock, &stubFetcher{})

	_, err := orch.HandleChat(context.Background(), models.ChatRequest{Message: "news"})
	var argErr *errs.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "fetch_news", argErr.Tool)

	// partial mutation is kept: user message plus the assistant tool-call message
	history := orch.Messages()
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
}

func TestHandleChatDuplicateToolCalls(t *testing.T) {
	fetcher := &stubFetcher{}
	mock := &llm.MockClient{Responses: []*llm.Completion{
		{ToolCalls: []models.ToolCall{
			{ID: "c1", Name: "fetch_news", Arguments: `{"query": "a"}`},
			{ID: "c2", Name: "fetch_news", Arguments: `{"query": "b"}`},
		}},
		{Content: "both fetched"},
	}}
	orch := orchestrator.New(mock, fetcher)

	resp := chat(t, orch, "two topics")

	assert.Equal(t, []string{"fetch_news", "fetch_news"}, resp.ToolsUsed)
	require.Len(t, resp.ConversationHistory, 5)
	assert.Equal(t, "c1", resp.ConversationHistory[2].ToolCallID)
	assert.Equal(t, "c2", resp.ConversationHistory[3].ToolCallID)
}

func TestHandleChatFetcherErrorAbortsTurn(t *testing.T) {
	fetcher := &stubFetcher{err: &errs.ProviderError{Provider: "exa", StatusCode: 500, Body: "boom"}}
	mock := &llm.MockClient{Responses: []*llm.Completion{
		{ToolCalls: []models.ToolCall{{ID: "c1", Name: "fetch_news", Arguments: `{"query": "a"}`}}},
	}}
	orch := orchestrator.New(mock, fetcher)

	_, err := orch.HandleChat(context.Background(), models.ChatRequest{Message: "news"})
	var provErr *errs.ProviderError
	require.ErrorAs(t, err, &provErr)
}

func TestHandleChatLLMError(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("upstream down")}
	orch := orchestrator.New(mock, &stubFetcher{})

	_, err := orch.HandleChat(context.Background(), models.ChatRequest{Message: "hi"})
	require.Error(t, err)

	// the user message stays in the transcript
	require.Len(t, orch.Messages(), 1)
}

func TestResetClearsConversation(t *testing.T) {
	mock := &llm.MockClient{Responses: []*llm.Completion{{Content: "a"}, {Content: "b"}}}
	orch := orchestrator.New(mock, &stubFetcher{})

	chat(t, orch, "first")
	require.Len(t, orch.Messages(), 2)

	orch.Reset()
	assert.Empty(t, orch.Messages())

	resp := chat(t, orch, "second")
	require.Len(t, resp.ConversationHistory, 2)
	assert.Equal(t, "second", resp.ConversationHistory[0].Content)
}

func TestPreferencesEchoedUnchanged(t *testing.T) {
	mock := &llm.MockClient{Responses: []*llm.Completion{{Content: "noted"}}}
	orch := orchestrator.New(mock, &stubFetcher{})

	prefs := models.UserPreferences{
		ToneOfVoice:      models.ToneCasual,
		ResponseFormat:   models.FormatBulletPoints,
		Language:         models.LanguageEnglish,
		InteractionStyle: models.StyleConcise,
		PreferredTopics:  []string{"tech", "science"},
	}
	resp, err := orch.HandleChat(context.Background(), models.ChatRequest{Message: "hi", UserPreferences: prefs})
	require.NoError(t, err)
	assert.Equal(t, prefs, resp.UserPreferences)
}
