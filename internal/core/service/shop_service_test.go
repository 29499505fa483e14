package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopstack/accounts-api/internal/core/domain"
)

func TestShopService_CreateShop(t *testing.T) {
	repo := newStubShopRepo()
	svc := NewShopService(repo, zerolog.Nop())

	shop, err := svc.CreateShop(context.Background(), "  North Store  ")
	if err != nil {
		t.Fatalf("create shop failed: %v", err)
	}
	if shop.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if shop.Name != "North Store" {
		t.Fatalf("expected trimmed name, got %q", shop.Name)
	}
}

func TestShopService_CreateShop_EmptyName(t *testing.T) {
	repo := newStubShopRepo()
	svc := NewShopService(repo, zerolog.Nop())

	if _, err := svc.CreateShop(context.Background(), "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestShopService_ListShops(t *testing.T) {
	repo := newStubShopRepo()
	svc := NewShopService(repo, zerolog.Nop())

	for _, name := range []string{"North Store", "South Store"} {
		if _, err := svc.CreateShop(context.Background(), name); err != nil {
			t.Fatalf("create shop failed: %v", err)
		}
	}

	shops, err := svc.ListShops(context.Background())
	if err != nil {
		t.Fatalf("list shops failed: %v", err)
	}
	if len(shops) != 2 {
		t.Fatalf("expected 2 shops, got %d", len(shops))
	}
}
