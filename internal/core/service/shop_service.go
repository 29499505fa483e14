package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/accounts-api/internal/core/domain"
	"github.com/shopstack/accounts-api/internal/core/ports"
)

type shopService struct {
	shops ports.ShopRepository
	log   zerolog.Logger
}

// NewShopService returns the ShopService implementation.
func NewShopService(shops ports.ShopRepository, log zerolog.Logger) ports.ShopService {
	return &shopService{shops: shops, log: log}
}

func (s *shopService) CreateShop(ctx context.Context, name string) (*domain.Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: shop name is required", domain.ErrValidation)
	}

	shop := &domain.Shop{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.shops.Create(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}

	s.log.Info().Str("shop_id", created.ID).Str("name", created.Name).Msg("shop created")
	return created, nil
}

func (s *shopService) ListShops(ctx context.Context) ([]*domain.Shop, error) {
	shops, err := s.shops.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return shops, nil
}
