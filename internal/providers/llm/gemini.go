//go:build gemini

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/example/news-agent/internal/errs"
	"github.com/example/news-agent/internal/models"
	"github.com/example/news-agent/internal/tools"
)

// GeminiClient drives the generative-ai-go SDK. Gemini has no tool-call ids,
// so ids are synthesized per response and mapped back to function names when
// tool results are replayed.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func newGeminiClient(apiKey, model string) (Client, error) {
	c, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: c, model: model}, nil
}

func (c *GeminiClient) ChatCompletion(ctx context.Context, messages []models.Message, defs []tools.Definition) (*Completion, error) {
	model := c.client.GenerativeModel(c.model)

	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, d := range defs {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  toGeminiSchema(d.Parameters),
		})
	}
	if len(decls) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	// id -> function name, needed when replaying tool results
	callNames := map[string]string{}
	var history []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(msg.Content)}}
		case models.RoleUser:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}})
		case models.RoleAssistant:
			var parts []genai.Part
			if msg.Content != "" {
				parts = append(parts, genai.Text(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				callNames[tc.ID] = tc.Name
				args := map[string]any{}
				_ = json.Unmarshal([]byte(tc.Arguments), &args)
				parts = append(parts, genai.FunctionCall{Name: tc.Name, Args: args})
			}
			history = append(history, &genai.Content{Role: "model", Parts: parts})
		case models.RoleTool:
			name := callNames[msg.ToolCallID]
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{
				genai.FunctionResponse{Name: name, Response: map[string]any{"content": msg.Content}},
			}})
		}
	}
	if len(history) == 0 {
		return nil, errors.New("empty message list")
	}

	cs := model.StartChat()
	cs.History = history[:len(history)-1]
	resp, err := cs.SendMessage(ctx, history[len(history)-1].Parts...)
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, &errs.ProviderError{Provider: "gemini", StatusCode: gerr.Code, Body: gerr.Body}
		}
		return nil, &errs.TransportError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no candidates")
	}

	out := &Completion{}
	for i, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			out.Content += string(p)
		case genai.FunctionCall:
			args, _ := json.Marshal(p.Args)
			out.ToolCalls = append(out.ToolCalls, models.ToolCall{
				ID:        fmt.Sprintf("call_%d", i),
				Name:      p.Name,
				Arguments: string(args),
			})
		}
	}
	return out, nil
}

func toGeminiSchema(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}
	out := &genai.Schema{}
	if t, ok := schema["type"].(string); ok {
		out.Type = geminiType(t)
	}
	if d, ok := schema["description"].(string); ok {
		out.Description = d
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		out.Properties = map[string]*genai.Schema{}
		for name, sub := range props {
			if m, ok := sub.(map[string]any); ok {
				out.Properties[name] = toGeminiSchema(m)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		out.Items = toGeminiSchema(items)
	}
	switch req := schema["required"].(type) {
	case []string:
		out.Required = req
	case []any:
		for _, r := range req {
			if s, ok := r.(string); ok {
				out.Required = append(out.Required, s)
			}
		}
	}
	return out
}

func geminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	}
	return genai.TypeUnspecified
}
