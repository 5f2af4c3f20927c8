package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix     = "cart:"
	redisUpdateRetries = 5
)

// slotGetter is satisfied by both *redis.Client and *redis.Tx.
type slotGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

var errUpdateContention = errors.New("cart slot update lost too many races")

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisCart stores each slot under "cart:<ownerID>". A zero ttl keeps slots forever.
func NewRedisCart(client *redis.Client, ttl time.Duration, log *zap.Logger) port.CartStore {
	return &redisCartRepository{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (r *redisCartRepository) Load(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return r.load(ctx, r.client, ownerID)
}

func (r *redisCartRepository) Save(ctx context.Context, cart domain.Cart) error {
	if err := validateCart(cart); err != nil {
		return err
	}

	data, err := encodeLines(cart.Lines)
	if err != nil {
		return fmt.Errorf("encodeLines: %w", err)
	}

	if err := r.client.Set(ctx, slotKey(cart.OwnerID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (r *redisCartRepository) Clear(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := r.client.Del(ctx, slotKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

func (r *redisCartRepository) Update(ctx context.Context, ownerID string, fn func(cart *domain.Cart) error) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	key := slotKey(ownerID)

	var result domain.Cart
	txf := func(tx *redis.Tx) error {
		cart, err := r.load(ctx, tx, ownerID)
		if err != nil {
			return err
		}

		if err := fn(&cart); err != nil {
			return err
		}

		if err := validateCart(cart); err != nil {
			return err
		}

		data, err := encodeLines(cart.Lines)
		if err != nil {
			return fmt.Errorf("encodeLines: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = cart
		return nil
	}

	for range redisUpdateRetries {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return domain.Cart{}, fmt.Errorf("client.Watch: %w", err)
		}
		return result, nil
	}

	return domain.Cart{}, fmt.Errorf("owner[%s]: %w", ownerID, errUpdateContention)
}

func (r *redisCartRepository) load(ctx context.Context, c slotGetter, ownerID string) (domain.Cart, error) {
	data, err := c.Get(ctx, slotKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{OwnerID: ownerID}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("Get: %w", err)
	}

	return slotCart(r.log, ownerID, data), nil
}

func slotKey(ownerID string) string {
	return redisKeyPrefix + ownerID
}
