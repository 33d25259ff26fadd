package market

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tg-invest-bot/internal/domain"
)

const openSeaBase = "https://api.opensea.io"

// OpenSea предоставляет данные NFT-маркетплейса.
type OpenSea struct {
	key    string
	base   string
	client *http.Client
}

// NewOpenSea создаёт клиент OpenSea.
func NewOpenSea(key string) *OpenSea {
	return &OpenSea{
		key:    key,
		base:   openSeaBase,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

var _ domain.NFTMarket = (*OpenSea)(nil)

func (o *OpenSea) headers() map[string]string {
	if o.key == "" {
		return nil
	}
	return map[string]string{"X-API-KEY": o.key}
}

// Collection реализует domain.NFTMarket.
func (o *OpenSea) Collection(ctx context.Context, slug string) (domain.NFTCollection, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	collection := domain.NFTCollection{Slug: slug, Currency: "ETH"}
	if o.key == "" {
		return collection, nil
	}

	var meta struct {
		Name string `json:"name"`
	}
	endpoint := o.base + "/api/v2/collections/" + url.PathEscape(slug)
	if err := getJSON(ctx, o.client, "opensea", "collection", slug, endpoint, o.headers(), &meta); err != nil {
		return domain.NFTCollection{}, domain.ErrNotFound
	}
	collection.Name = meta.Name

	var stats struct {
		Total struct {
			FloorPrice *float64 `json:"floor_price"`
		} `json:"total"`
	}
	endpoint = o.base + "/api/v2/collections/" + url.PathEscape(slug) + "/stats"
	if err := getJSON(ctx, o.client, "opensea", "collection_stats", slug, endpoint, o.headers(), &stats); err == nil {
		collection.FloorPrice = stats.Total.FloorPrice
	}
	return collection, nil
}

// TopCollections реализует domain.NFTMarket.
func (o *OpenSea) TopCollections(ctx context.Context, limit int) ([]domain.NFTCollection, error) {
	if o.key == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	var raw struct {
		Collections []struct {
			Collection string `json:"collection"`
			Name       string `json:"name"`
		} `json:"collections"`
	}
	endpoint := o.base + "/api/v2/collections?order_by=market_cap&limit=" + strconv.Itoa(limit)
	if err := getJSON(ctx, o.client, "opensea", "collections", "top", endpoint, o.headers(), &raw); err != nil {
		return nil, err
	}

	collections := make([]domain.NFTCollection, 0, len(raw.Collections))
	for _, item := range raw.Collections {
		collection, err := o.Collection(ctx, item.Collection)
		if err != nil {
			collection = domain.NFTCollection{Slug: item.Collection, Name: item.Name, Currency: "ETH"}
		}
		if collection.Name == "" {
			collection.Name = item.Name
		}
		collections = append(collections, collection)
	}
	return collections, nil
}

// Search реализует domain.NFTMarket. Поиск работает по slug коллекции.
func (o *OpenSea) Search(ctx context.Context, query string) ([]domain.NFTCollection, error) {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(query), " ", "-"))
	if slug == "" {
		return nil, nil
	}
	collection, err := o.Collection(ctx, slug)
	if err != nil {
		return nil, err
	}
	return []domain.NFTCollection{collection}, nil
}
