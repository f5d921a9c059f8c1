package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/example/news-agent/internal/errs"
	"github.com/example/news-agent/internal/models"
	"github.com/example/news-agent/internal/tools"
)

// AnthropicClient talks to the Messages API over plain HTTP. Tool calls map
// to tool_use content blocks and tool transcript messages go back as
// tool_result blocks inside a user turn.
type AnthropicClient struct {
	APIKey string
	Model  string
}

func (c *AnthropicClient) ChatCompletion(ctx context.Context, messages []models.Message, defs []tools.Definition) (*Completion, error) {
	var system string
	anthMessages := []map[string]any{}
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			system = msg.Content
		case models.RoleUser:
			anthMessages = append(anthMessages, map[string]any{
				"role":    "user",
				"content": []map[string]any{{"type": "text", "text": msg.Content}},
			})
		case models.RoleAssistant:
			blocks := []map[string]any{}
			if msg.Content != "" {
				blocks = append(blocks, map[string]any{"type": "text", "text": msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				input := map[string]any{}
				_ = json.Unmarshal([]byte(tc.Arguments), &input)
				blocks = append(blocks, map[string]any{
					"type":  "tool_use",
					"id":    tc.ID,
					"name":  tc.Name,
					"input": input,
				})
			}
			anthMessages = append(anthMessages, map[string]any{"role": "assistant", "content": blocks})
		case models.RoleTool:
			anthMessages = append(anthMessages, map[string]any{
				"role": "user",
				"content": []map[string]any{{
					"type":        "tool_result",
					"tool_use_id": msg.ToolCallID,
					"content":     msg.Content,
				}},
			})
		}
	}

	anthTools := make([]map[string]any, 0, len(defs))
	for _, d := range defs {
		anthTools = append(anthTools, map[string]any{
			"name":         d.Name,
			"description":  d.Description,
			"input_schema": d.Parameters,
		})
	}

	body := map[string]any{
		"model":       c.Model,
		"max_tokens":  1024,
		"messages":    anthMessages,
		"tools":       anthTools,
		"tool_choice": map[string]any{"type": "auto"},
	}
	if system != "" {
		body["system"] = system
	}

	var resp struct {
		Content []struct {
			Type  string          `json:"type"`
			Text  string          `json:"text"`
			ID    string          `json:"id"`
			Name  string          `json:"name"`
			Input json.RawMessage `json:"input"`
		} `json:"content"`
	}
	if err := c.postJSON(ctx, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Content) == 0 {
		return nil, errors.New("no content")
	}

	out := &Completion{}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Content += block.Text
		case "tool_use":
			args := string(block.Input)
			if args == "" {
				args = "{}"
			}
			out.ToolCalls = append(out.ToolCalls, models.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: args,
			})
		}
	}
	return out, nil
}

func (c *AnthropicClient) postJSON(ctx context.Context, body any, out any) error {
	b, _ := json.Marshal(body)
	url := os.Getenv("ANTHROPIC_API_URL")
	if url == "" {
		url = "https://api.anthropic.com/v1/messages"
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("content-type", "application/json")
	httpClient := &http.Client{Timeout: clientTimeout()}
	res, err := httpClient.Do(req)
	if err != nil {
		return &errs.TransportError{Provider: "anthropic", Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		eb, _ := io.ReadAll(res.Body)
		return &errs.ProviderError{Provider: "anthropic", StatusCode: res.StatusCode, Body: string(eb)}
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func clientTimeout() time.Duration {
	if v := os.Getenv("LLM_HTTP_TIMEOUT_MS"); v != "" {
		if ms, err := time.ParseDuration(v + "ms"); err == nil {
			return ms
		}
	}
	return 45 * time.Second
}
