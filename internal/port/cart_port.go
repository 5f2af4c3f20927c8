package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// CartStore persists one cart slot per owner. A missing or corrupt slot loads as an empty cart.
type CartStore interface {
	Load(ctx context.Context, ownerID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Clear(ctx context.Context, ownerID string) error
	// Update re-reads the slot, applies fn and saves the result as one step.
	Update(ctx context.Context, ownerID string, fn func(cart *domain.Cart) error) (domain.Cart, error)
}
