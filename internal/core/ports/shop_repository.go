package ports

import (
	"context"

	"github.com/shopstack/accounts-api/internal/core/domain"
)

// ShopRepository defines persistence operations for shop tenants.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	// FindByID returns domain.ErrShopNotFound when no shop matches.
	FindByID(ctx context.Context, id string) (*domain.Shop, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*domain.Shop, error)
}
