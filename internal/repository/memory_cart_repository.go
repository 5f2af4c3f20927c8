package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

// memoryCartRepository keeps encoded slots in process memory. It is the default
// backend for local runs and loses every cart on restart.
type memoryCartRepository struct {
	mu    sync.Mutex
	slots map[string][]byte
	log   *zap.Logger
}

func NewMemoryCart(log *zap.Logger) port.CartStore {
	return &memoryCartRepository{
		slots: make(map[string][]byte),
		log:   log,
	}
}

func (r *memoryCartRepository) Load(_ context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return slotCart(r.log, ownerID, r.slots[ownerID]), nil
}

func (r *memoryCartRepository) Save(_ context.Context, cart domain.Cart) error {
	if err := validateCart(cart); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.save(cart)
}

func (r *memoryCartRepository) Clear(_ context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.slots, ownerID)
	return nil
}

func (r *memoryCartRepository) Update(_ context.Context, ownerID string, fn func(cart *domain.Cart) error) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cart := slotCart(r.log, ownerID, r.slots[ownerID])
	if err := fn(&cart); err != nil {
		return domain.Cart{}, err
	}

	if err := validateCart(cart); err != nil {
		return domain.Cart{}, err
	}

	if err := r.save(cart); err != nil {
		return domain.Cart{}, err
	}

	return cart, nil
}

func (r *memoryCartRepository) save(cart domain.Cart) error {
	data, err := encodeLines(cart.Lines)
	if err != nil {
		return fmt.Errorf("encodeLines: %w", err)
	}

	r.slots[cart.OwnerID] = data
	return nil
}
