package market

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tg-invest-bot/internal/domain"
)

const newsAPIBase = "https://newsapi.org"

// NewsAPI предоставляет новостную ленту.
type NewsAPI struct {
	key    string
	base   string
	client *http.Client
}

// NewNewsAPI создаёт клиент newsapi.org.
func NewNewsAPI(key string) *NewsAPI {
	return &NewsAPI{
		key:    key,
		base:   newsAPIBase,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

var _ domain.NewsFeed = (*NewsAPI)(nil)

type newsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

func (a newsArticle) toDomain() domain.NewsItem {
	item := domain.NewsItem{
		Title:       a.Title,
		Description: a.Description,
		Source:      a.Source.Name,
		URL:         a.URL,
	}
	if parsed, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		item.PublishedAt = parsed
	}
	return item
}

func (n *NewsAPI) fetch(ctx context.Context, operation, endpoint string, limit int) ([]domain.NewsItem, error) {
	if n.key == "" {
		return nil, nil
	}

	var raw struct {
		Articles []newsArticle `json:"articles"`
	}
	if err := getJSON(ctx, n.client, "newsapi", operation, "news", endpoint, map[string]string{"X-Api-Key": n.key}, &raw); err != nil {
		return nil, err
	}
	items := make([]domain.NewsItem, 0, limit)
	for _, article := range raw.Articles {
		if article.Title == "" {
			continue
		}
		items = append(items, article.toDomain())
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

// Headlines реализует domain.NewsFeed.
func (n *NewsAPI) Headlines(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	if limit <= 0 {
		limit = 20
	}
	params := url.Values{
		"category": {"business"},
		"pageSize": {strconv.Itoa(limit)},
	}
	return n.fetch(ctx, "top_headlines", n.base+"/v2/top-headlines?"+params.Encode(), limit)
}

// Search реализует domain.NewsFeed.
func (n *NewsAPI) Search(ctx context.Context, query string, limit int) ([]domain.NewsItem, error) {
	if limit <= 0 {
		limit = 20
	}
	params := url.Values{
		"q":        {query},
		"sortBy":   {"publishedAt"},
		"pageSize": {strconv.Itoa(limit)},
	}
	return n.fetch(ctx, "everything", n.base+"/v2/everything?"+params.Encode(), limit)
}
