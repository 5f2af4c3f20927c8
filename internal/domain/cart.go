package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCorruptCart marks a persisted cart that could not be decoded or breaks line invariants.
var ErrCorruptCart = errors.New("cart slot is corrupt")

type Cart struct {
	OwnerID string
	Lines   []CartLine
}

// CartLine is a snapshot of a product at the time it was added, plus its quantity.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) SubtotalUSD() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Add increments the line for p, or appends a new line with quantity 1.
func (c *Cart) Add(p Product) {
	for i := range c.Lines {
		if c.Lines[i].ID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}

	c.Lines = append(c.Lines, CartLine{Product: p, Quantity: 1})
}

// Increase bumps the quantity of the line at index. It reports false for an out of range index.
func (c *Cart) Increase(index int) bool {
	if !c.inRange(index) {
		return false
	}

	c.Lines[index].Quantity++
	return true
}

// Decrease lowers the quantity of the line at index, removing the line when it would reach zero.
func (c *Cart) Decrease(index int) bool {
	if !c.inRange(index) {
		return false
	}

	if c.Lines[index].Quantity > 1 {
		c.Lines[index].Quantity--
		return true
	}

	return c.Remove(index)
}

func (c *Cart) Remove(index int) bool {
	if !c.inRange(index) {
		return false
	}

	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return true
}

// Count is the number of items in the cart, the sum of all line quantities.
func (c Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) TotalUSD() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.SubtotalUSD())
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Validate checks the line invariants: positive quantities and one line per product.
func (c Cart) Validate() error {
	seen := make(map[int64]struct{}, len(c.Lines))

	for i, l := range c.Lines {
		if l.Quantity <= 0 {
			return fmt.Errorf("line[%d] product[%d] quantity %d: %w", i, l.ID, l.Quantity, ErrCorruptCart)
		}
		if _, ok := seen[l.ID]; ok {
			return fmt.Errorf("line[%d] product[%d] is duplicated: %w", i, l.ID, ErrCorruptCart)
		}
		seen[l.ID] = struct{}{}
	}

	return nil
}

func (c Cart) inRange(index int) bool {
	return index >= 0 && index < len(c.Lines)
}
