package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

var errLineNotFound = errors.New("cart line not found")

// Cart drives the cart page of one visitor. Every mutation re-reads the store and
// the page is rebuilt from storage afterwards.
type Cart struct {
	ownerID string
	store   port.CartStore
	conv    *Converter
	log     *zap.Logger

	cart domain.Cart
}

func NewCart(ownerID string, rates port.RateSource, store port.CartStore, log *zap.Logger) *Cart {
	return &Cart{
		ownerID: ownerID,
		store:   store,
		conv:    NewConverter(rates, log),
		log:     log,
		cart:    domain.Cart{OwnerID: ownerID},
	}
}

// Load fetches exchange rates, then renders the stored cart.
func (c *Cart) Load(ctx context.Context) error {
	c.conv.Refresh(ctx)
	return c.render(ctx)
}

func (c *Cart) Decrease(ctx context.Context, index int) error {
	return c.mutate(ctx, "decrease", index, (*domain.Cart).Decrease)
}

func (c *Cart) Increase(ctx context.Context, index int) error {
	return c.mutate(ctx, "increase", index, (*domain.Cart).Increase)
}

func (c *Cart) Remove(ctx context.Context, index int) error {
	return c.mutate(ctx, "remove", index, (*domain.Cart).Remove)
}

func (c *Cart) ChangeCurrency(ctx context.Context, unit currency.Unit) error {
	c.conv.SetCurrency(unit)
	return c.render(ctx)
}

func (c *Cart) Close() {
	c.conv.Close()
}

func (c *Cart) View() CartView {
	selected := c.conv.Currency()

	view := CartView{
		Currency:   selected.String(),
		Currencies: currencyOptions(selected),
		Total:      c.conv.Convert(c.cart.TotalUSD()).String(),
		Count:      c.cart.Count(),
		Empty:      c.cart.IsEmpty(),
	}

	for i, line := range c.cart.Lines {
		view.Rows = append(view.Rows, CartRow{
			Index:     i,
			ID:        line.ID,
			Title:     line.Title,
			Image:     line.Image,
			UnitPrice: c.conv.Convert(line.Price).String(),
			Quantity:  line.Quantity,
			Subtotal:  c.conv.Convert(line.SubtotalUSD()).String(),
		})
	}

	return view
}

func (c *Cart) mutate(ctx context.Context, op string, index int, fn func(cart *domain.Cart, index int) bool) error {
	_, err := c.store.Update(ctx, c.ownerID, func(cart *domain.Cart) error {
		if !fn(cart, index) {
			return errLineNotFound
		}
		return nil
	})

	switch {
	case errors.Is(err, errLineNotFound):
		c.log.Warn("cart line index out of range",
			zap.String("op", op),
			zap.String("owner_id", c.ownerID),
			zap.Int("index", index))
	case err != nil:
		return fmt.Errorf("store.Update: %w", err)
	}

	return c.render(ctx)
}

func (c *Cart) render(ctx context.Context) error {
	cart, err := c.store.Load(ctx, c.ownerID)
	if err != nil {
		return fmt.Errorf("store.Load: %w", err)
	}

	c.cart = cart
	return nil
}
