package models

// Role values used in conversation messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a tool invocation requested by the model. Arguments is the
// raw JSON payload exactly as the provider emitted it.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one entry in the conversation transcript. Content may be empty
// on assistant messages that only carry tool calls.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	Timestamp  string     `json:"timestamp,omitempty"`
}

type ToneOfVoice string

const (
	ToneFormal       ToneOfVoice = "formal"
	ToneCasual       ToneOfVoice = "casual"
	ToneEnthusiastic ToneOfVoice = "enthusiastic"
)

type ResponseFormat string

const (
	FormatBulletPoints ResponseFormat = "bullet points"
	FormatParagraphs   ResponseFormat = "paragraphs"
)

type Language string

const (
	LanguageEnglish Language = "English"
	LanguageSpanish Language = "Spanish"
)

type InteractionStyle string

const (
	StyleConcise  InteractionStyle = "concise"
	StyleDetailed InteractionStyle = "detailed"
)

// UserPreferences is carried through requests and responses unchanged; the
// model interprets it via the system prompt, the server never enforces it.
type UserPreferences struct {
	ToneOfVoice      ToneOfVoice      `json:"tone_of_voice,omitempty"`
	ResponseFormat   ResponseFormat   `json:"response_format,omitempty"`
	Language         Language         `json:"language,omitempty"`
	InteractionStyle InteractionStyle `json:"interaction_style,omitempty"`
	PreferredTopics  []string         `json:"preferred_topics,omitempty"`
}

type ChatRequest struct {
	Message             string          `json:"message"`
	ConversationHistory []Message       `json:"conversation_history"`
	UserPreferences     UserPreferences `json:"user_preferences"`
}

type ChatResponse struct {
	Message             string          `json:"message"`
	ConversationHistory []Message       `json:"conversation_history"`
	UserPreferences     UserPreferences `json:"user_preferences"`
	ToolsUsed           []string        `json:"tools_used"`
}

// ToolResult records the outcome of a single tool execution.
type ToolResult struct {
	ToolName string `json:"tool_name"`
	Result   string `json:"result"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

type NewsArticle struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	PublishedDate string `json:"published_date,omitempty"`
	Source        string `json:"source,omitempty"`
}

type NewsSearchResult struct {
	Articles     []NewsArticle `json:"articles"`
	Query        string        `json:"query"`
	TotalResults int           `json:"total_results"`
}
