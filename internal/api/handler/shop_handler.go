package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/accounts-api/internal/core/ports"
)

type ShopHandler struct {
	shops ports.ShopService
}

func NewShopHandler(shops ports.ShopService) *ShopHandler {
	return &ShopHandler{shops: shops}
}

type createShopRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateShop registers a new shop tenant. Admin only.
//
// @Summary      Create a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShopRequest  true  "Shop details"
// @Success      200   {object}  domain.Shop
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /shops [post]
func (h *ShopHandler) CreateShop(c echo.Context) error {
	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shop, err := h.shops.CreateShop(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shop)
}

// ListShops returns all shop tenants. Admin only.
//
// @Summary      List shops
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Shop
// @Failure      403  {object}  map[string]string
// @Router       /shops [get]
func (h *ShopHandler) ListShops(c echo.Context) error {
	shops, err := h.shops.ListShops(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shops)
}
