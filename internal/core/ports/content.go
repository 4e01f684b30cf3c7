package ports

import (
	"context"

	"github.com/favourami/eventplanner/internal/core/domain"
)

// ContentProvider is a read-only third-party catalogue (books, games, movies).
type ContentProvider interface {
	Category() domain.ShopCategory
	Search(ctx context.Context, query string) ([]domain.ShopItem, error)
}

// ContentCache keeps recent provider results.
type ContentCache interface {
	Get(ctx context.Context, category domain.ShopCategory, query string) ([]domain.ShopItem, bool, error)
	Put(ctx context.Context, category domain.ShopCategory, query string, items []domain.ShopItem) error
}
