package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/favourami/eventplanner/internal/core/domain"
)

// DefaultBooksURL is the Google Books API.
const DefaultBooksURL = "https://www.googleapis.com/books/v1"

const defaultBooksQuery = "gift"

// Books searches the Google Books volumes endpoint.
type Books struct {
	cfg    Config
	client *http.Client
}

type booksResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ImageLinks  struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func NewBooks(cfg Config) *Books {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBooksURL
	}
	return &Books{cfg: cfg, client: newHTTPClient(cfg)}
}

func (b *Books) Category() domain.ShopCategory { return domain.CategoryBooks }

func (b *Books) Search(ctx context.Context, query string) ([]domain.ShopItem, error) {
	if query == "" {
		query = defaultBooksQuery
	}
	v := url.Values{"q": {query}}
	if b.cfg.APIKey != "" {
		v.Set("key", b.cfg.APIKey)
	}

	var resp booksResponse
	if err := getJSON(ctx, b.client, strings.TrimRight(b.cfg.BaseURL, "/")+"/volumes?"+v.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("books: %w", err)
	}

	items := make([]domain.ShopItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, domain.ShopItem{
			ID:          it.ID,
			Category:    domain.CategoryBooks,
			Title:       it.VolumeInfo.Title,
			Description: it.VolumeInfo.Description,
			ImageURL:    it.VolumeInfo.ImageLinks.Thumbnail,
		})
	}
	return items, nil
}
