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

const (
	// DefaultMoviesURL is The Movie Database v3 API.
	DefaultMoviesURL = "https://api.themoviedb.org/3"

	posterBaseURL = "https://image.tmdb.org/t/p/w500"
)

// Movies searches TMDB. An empty query lists popular movies.
type Movies struct {
	cfg    Config
	client *http.Client
}

type moviesResponse struct {
	Results []struct {
		ID         int    `json:"id"`
		Title      string `json:"title"`
		Overview   string `json:"overview"`
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

func NewMovies(cfg Config) *Movies {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMoviesURL
	}
	return &Movies{cfg: cfg, client: newHTTPClient(cfg)}
}

func (m *Movies) Category() domain.ShopCategory { return domain.CategoryMovies }

func (m *Movies) Search(ctx context.Context, query string) ([]domain.ShopItem, error) {
	v := url.Values{"api_key": {m.cfg.APIKey}}
	path := "/movie/popular"
	if query != "" {
		path = "/search/movie"
		v.Set("query", query)
	}

	var resp moviesResponse
	if err := getJSON(ctx, m.client, strings.TrimRight(m.cfg.BaseURL, "/")+path+"?"+v.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("movies: %w", err)
	}

	items := make([]domain.ShopItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		img := ""
		if r.PosterPath != "" {
			img = posterBaseURL + r.PosterPath
		}
		items = append(items, domain.ShopItem{
			ID:          strconv.Itoa(r.ID),
			Category:    domain.CategoryMovies,
			Title:       r.Title,
			Description: r.Overview,
			ImageURL:    img,
		})
	}
	return items, nil
}
