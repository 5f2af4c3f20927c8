package storefront

import (
	"maps"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Rates returns a copy of the current table.
func (c *Converter) Rates() domain.RateTable {
	c.mu.Lock()
	defer c.mu.Unlock()

	return maps.Clone(c.rates)
}

// Lines returns the cart as last rendered.
func (c *Cart) Lines() []domain.CartLine {
	return c.cart.Lines
}
