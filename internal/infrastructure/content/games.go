package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/favourami/eventplanner/internal/core/domain"
)

// DefaultGamesURL is the RAWG video games database API.
const DefaultGamesURL = "https://api.rawg.io/api"

// Games searches RAWG. An empty query lists popular games.
type Games struct {
	cfg    Config
	client *http.Client
}

type gamesResponse struct {
	Results []struct {
		ID              int    `json:"id"`
		Name            string `json:"name"`
		Released        string `json:"released"`
		BackgroundImage string `json:"background_image"`
	} `json:"results"`
}

func NewGames(cfg Config) *Games {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGamesURL
	}
	return &Games{cfg: cfg, client: newHTTPClient(cfg)}
}

func (g *Games) Category() domain.ShopCategory { return domain.CategoryGames }

func (g *Games) Search(ctx context.Context, query string) ([]domain.ShopItem, error) {
	v := url.Values{"key": {g.cfg.APIKey}}
	if query != "" {
		v.Set("search", query)
	}

	var resp gamesResponse
	if err := getJSON(ctx, g.client, strings.TrimRight(g.cfg.BaseURL, "/")+"/games?"+v.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("games: %w", err)
	}

	items := make([]domain.ShopItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		desc := ""
		if r.Released != "" {
			desc = "Released " + r.Released
		}
		items = append(items, domain.ShopItem{
			ID:          strconv.Itoa(r.ID),
			Category:    domain.CategoryGames,
			Title:       r.Name,
			Description: desc,
			ImageURL:    r.BackgroundImage,
		})
	}
	return items, nil
}
