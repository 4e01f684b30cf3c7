package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

type shopService struct {
	providers map[domain.ShopCategory]ports.ContentProvider
	cache     ports.ContentCache
	log       zerolog.Logger
}

// NewShopService serves each category from its provider through cache. A nil
// cache disables caching.
func NewShopService(providers []ports.ContentProvider, cache ports.ContentCache, log zerolog.Logger) ports.ShopService {
	m := make(map[domain.ShopCategory]ports.ContentProvider, len(providers))
	for _, p := range providers {
		m[p.Category()] = p
	}
	return &shopService{providers: m, cache: cache, log: log}
}

func (s *shopService) Browse(ctx context.Context, category domain.ShopCategory, query string) ([]domain.ShopItem, error) {
	if !category.Valid() {
		return nil, domain.NewValidationError("category", "must be one of: books, games, movies")
	}
	provider, ok := s.providers[category]
	if !ok {
		return nil, fmt.Errorf("shop %s: %w", category, domain.ErrNotFound)
	}
	query = strings.TrimSpace(query)

	if s.cache != nil {
		items, hit, err := s.cache.Get(ctx, category, query)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("category", string(category)).Msg("shop cache read failed")
		case hit:
			return items, nil
		}
	}

	items, err := provider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("shop %s: %w", category, err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, category, query, items); err != nil {
			s.log.Warn().Err(err).Str("category", string(category)).Msg("shop cache write failed")
		}
	}
	return items, nil
}
