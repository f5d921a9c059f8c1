package tools

// Tool names the model is allowed to call. The catalog is closed: dispatch
// happens over these two names and nothing else.
const (
	FetchNews     = "fetch_news"
	SummarizeNews = "summarize_news"
)

// Definition describes one callable tool in a provider-agnostic shape.
// Parameters is a JSON-Schema object; each LLM client converts it to its
// native tool format.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Definitions returns the fixed tool catalog advertised to the model on
// every completion. Order is stable. Pure data, no side effects.
func Definitions() []Definition {
	return []Definition{
		{
			Name:        FetchNews,
			Description: "Fetch the latest news articles on a given topic using Exa AI",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The search query for news articles (e.g., 'artificial intelligence', 'climate change')",
					},
					"num_results": map[string]any{
						"type":        "integer",
						"description": "Number of articles to fetch (default: 5, max: 10)",
						"default":     5,
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        SummarizeNews,
			Description: "Summarize a news article or multiple articles to provide concise information",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"articles": map[string]any{
						"type":        "array",
						"description": "Array of news articles to summarize",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"title":   map[string]any{"type": "string"},
								"url":     map[string]any{"type": "string"},
								"content": map[string]any{"type": "string"},
							},
						},
					},
					"summary_length": map[string]any{
						"type":        "string",
						"description": "Length of summary: 'brief', 'detailed', or 'comprehensive'",
						"default":     "brief",
					},
				},
				"required": []string{"articles"},
			},
		},
	}
}
