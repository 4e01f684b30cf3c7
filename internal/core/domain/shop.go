package domain

// ShopCategory names one third-party content provider.
type ShopCategory string

const (
	CategoryBooks  ShopCategory = "books"
	CategoryGames  ShopCategory = "games"
	CategoryMovies ShopCategory = "movies"
)

// ShopCategories lists the categories in display order.
var ShopCategories = []ShopCategory{CategoryBooks, CategoryGames, CategoryMovies}

func (c ShopCategory) Valid() bool {
	switch c {
	case CategoryBooks, CategoryGames, CategoryMovies:
		return true
	}
	return false
}

// ShopItem is a gift idea normalized from any provider.
type ShopItem struct {
	ID          string       `json:"id"`
	Category    ShopCategory `json:"category"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
}
