package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

type ShopHandler struct {
	shop ports.ShopService
}

func NewShopHandler(shop ports.ShopService) *ShopHandler {
	return &ShopHandler{shop: shop}
}

// Browse handles GET /shop/:category?q=.
//
// @Summary      Browse gift ideas
// @Tags         shop
// @Produce      json
// @Param        category  path      string  true   "books, games or movies"
// @Param        q         query     string  false  "Search terms"
// @Success      200       {array}   domain.ShopItem
// @Failure      422       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /shop/{category} [get]
func (h *ShopHandler) Browse(c echo.Context) error {
	items, err := h.shop.Browse(c.Request().Context(), domain.ShopCategory(c.Param("category")), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
