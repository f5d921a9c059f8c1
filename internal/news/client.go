package news

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/example/news-agent/internal/errs"
	"github.com/example/news-agent/internal/models"
)

const defaultBaseURL = "https://api.exa.ai"

// maxResults caps numResults regardless of what the model asked for.
const maxResults = 10

// includeDomains is the fixed allow-list sent with every search.
var includeDomains = []string{
	"news.yahoo.com",
	"reuters.com",
	"bbc.com",
	"cnn.com",
	"techcrunch.com",
}

// Client wraps the Exa search API. One outbound POST per FetchNews call,
// no caching, no retry.
type Client struct {
	APIKey  string
	BaseURL string

	httpClient *http.Client
}

// NewClient reads EXA_API_KEY from the environment. The key is validated at
// call time so the constructor never fails; cmd/server checks it at startup.
func NewClient() *Client {
	return &Client{
		APIKey:     os.Getenv("EXA_API_KEY"),
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type searchRequest struct {
	Query              string   `json:"query"`
	NumResults         int      `json:"numResults"`
	IncludeDomains     []string `json:"includeDomains"`
	ExcludeDomains     []string `json:"excludeDomains"`
	StartCrawlDate     *string  `json:"startCrawlDate"`
	EndCrawlDate       *string  `json:"endCrawlDate"`
	StartPublishedDate *string  `json:"startPublishedDate"`
	EndPublishedDate   *string  `json:"endPublishedDate"`
	UseAutoprompt      bool     `json:"useAutoprompt"`
	Type               string   `json:"type"`
}

type searchResponse struct {
	Results []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Text          string `json:"text"`
		PublishedDate string `json:"publishedDate"`
		Domain        string `json:"domain"`
	} `json:"results"`
}

// FetchNews runs a keyword search against the fixed news-domain allow-list
// and maps the results to articles. The result count reflects what the
// provider returned, not what was requested.
func (c *Client) FetchNews(ctx context.Context, query string, numResults int) (models.NewsSearchResult, error) {
	if c.APIKey == "" {
		return models.NewsSearchResult{}, &errs.ConfigurationError{Name: "EXA_API_KEY"}
	}
	if numResults > maxResults {
		numResults = maxResults
	}

	payload := searchRequest{
		Query:          query,
		NumResults:     numResults,
		IncludeDomains: includeDomains,
		ExcludeDomains: []string{},
		UseAutoprompt:  true,
		Type:           "keyword",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return models.NewsSearchResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return models.NewsSearchResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return models.NewsSearchResult{}, &errs.TransportError{Provider: "exa", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return models.NewsSearchResult{}, &errs.ProviderError{Provider: "exa", StatusCode: res.StatusCode, Body: string(b)}
	}

	var data searchResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return models.NewsSearchResult{}, err
	}

	articles := make([]models.NewsArticle, 0, len(data.Results))
	for _, r := range data.Results {
		articles = append(articles, models.NewsArticle{
			Title:         r.Title,
			URL:           r.URL,
			Content:       cleanContent(r.Text),
			PublishedDate: r.PublishedDate,
			Source:        r.Domain,
		})
	}

	return models.NewsSearchResult{
		Articles:     articles,
		Query:        query,
		TotalResults: len(articles),
	}, nil
}
