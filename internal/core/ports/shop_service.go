package ports

import (
	"context"

	"github.com/shopstack/accounts-api/internal/core/domain"
)

// ShopService manages shop tenants. Authorization is enforced at the route
// level (admin only).
type ShopService interface {
	CreateShop(ctx context.Context, name string) (*domain.Shop, error)
	ListShops(ctx context.Context) ([]*domain.Shop, error)
}
