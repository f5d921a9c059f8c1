package news

import (
	"fmt"
	"strings"

	"github.com/example/news-agent/internal/models"
)

// summarizeMax caps how many articles a single summary covers; anything past
// it is ignored without notice.
const summarizeMax = 5

// Summarize turns a list of articles into a short plain-text digest. Length
// "brief" gives title plus a 100-char excerpt; "detailed" raises the excerpt
// to 200 chars and includes the source; any other non-brief value (including
// "comprehensive") gets 300 chars. The threshold is an exact string match on
// "detailed", not a three-way enum.
func Summarize(articles []models.NewsArticle, length string) string {
	if len(articles) == 0 {
		return "No articles to summarize."
	}

	if len(articles) > summarizeMax {
		articles = articles[:summarizeMax]
	}

	var parts []string
	for i, article := range articles {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, article.Title))
		if length == "brief" {
			if article.Content != "" {
				parts = append(parts, "   "+excerpt(article.Content, 100))
			}
		} else {
			if article.Source != "" {
				parts = append(parts, "   Source: "+article.Source)
			}
			if article.Content != "" {
				limit := 300
				if length == "detailed" {
					limit = 200
				}
				parts = append(parts, "   "+excerpt(article.Content, limit))
			}
		}
		parts = append(parts, "")
	}

	return strings.Join(parts, "\n")
}

// excerpt truncates s at limit characters, appending an ellipsis only when
// something was actually cut. Counting runes keeps accented text from being
// cut short or split mid-character.
func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return s
}
