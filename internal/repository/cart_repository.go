package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewCart(pool *pgxpool.Pool, log *zap.Logger) port.CartStore {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
		log:  log,
	}
}

func NewCartWithTx(tx pgx.Tx, log *zap.Logger) port.CartStore {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
		log:  log,
	}
}

func (r *cartRepository) Load(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return r.load(ctx, r.q, ownerID)
}

func (r *cartRepository) Save(ctx context.Context, cart domain.Cart) error {
	if err := validateCart(cart); err != nil {
		return err
	}

	return r.save(ctx, r.q, cart)
}

func (r *cartRepository) Clear(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if _, err := r.q.DeleteSlot(ctx, ownerID); err != nil {
		return fmt.Errorf("q.DeleteSlot: %w", err)
	}

	return nil
}

func (r *cartRepository) Update(ctx context.Context, ownerID string, fn func(cart *domain.Cart) error) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		if err := q.LockSlot(ctx, ownerID); err != nil {
			return domain.Cart{}, fmt.Errorf("q.LockSlot: %w", err)
		}

		cart, err := r.load(ctx, q, ownerID)
		if err != nil {
			return domain.Cart{}, err
		}

		if err := fn(&cart); err != nil {
			return domain.Cart{}, err
		}

		if err := validateCart(cart); err != nil {
			return domain.Cart{}, err
		}

		if err := r.save(ctx, q, cart); err != nil {
			return domain.Cart{}, err
		}

		return cart, nil
	})
}

func (r *cartRepository) load(ctx context.Context, q *db.Queries, ownerID string) (domain.Cart, error) {
	slot, err := q.GetSlot(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Cart{OwnerID: ownerID}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetSlot: %w", err)
	}

	return slotCart(r.log, ownerID, slot.Lines), nil
}

func (r *cartRepository) save(ctx context.Context, q *db.Queries, cart domain.Cart) error {
	data, err := encodeLines(cart.Lines)
	if err != nil {
		return fmt.Errorf("encodeLines: %w", err)
	}

	err = q.UpsertSlot(ctx, db.UpsertSlotParams{
		OwnerID: cart.OwnerID,
		Lines:   data,
	})
	if err != nil {
		return fmt.Errorf("q.UpsertSlot: %w", err)
	}

	return nil
}
