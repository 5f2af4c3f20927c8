package storefront

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutValidating
	CheckoutInvalid
	CheckoutValid
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutIdle:
		return "idle"
	case CheckoutValidating:
		return "validating"
	case CheckoutInvalid:
		return "invalid"
	case CheckoutValid:
		return "valid"
	default:
		return fmt.Sprintf("CheckoutState(%d)", int(s))
	}
}

type Checkout struct {
	ownerID string
	store   port.CartStore
	log     *zap.Logger

	state        CheckoutState
	form         domain.ContactForm
	errors       domain.FieldErrors
	confirmation string
}

func NewCheckout(ownerID string, store port.CartStore, log *zap.Logger) *Checkout {
	return &Checkout{
		ownerID: ownerID,
		store:   store,
		log:     log,
		state:   CheckoutIdle,
	}
}

// Submit validates the form. Invalid input leaves the cart untouched and is reported
// through the view; only a failing store is returned as an error.
func (c *Checkout) Submit(ctx context.Context, form domain.ContactForm) error {
	c.state = CheckoutValidating
	c.errors = nil
	c.confirmation = ""

	trimmed := form.Trimmed()
	if errs := trimmed.Validate(); len(errs) > 0 {
		c.state = CheckoutInvalid
		c.form = form
		c.errors = errs
		return nil
	}

	if err := c.store.Clear(ctx, c.ownerID); err != nil {
		c.state = CheckoutIdle
		c.form = form
		return fmt.Errorf("store.Clear: %w", err)
	}

	c.log.Info("order placed", zap.String("owner_id", c.ownerID))

	c.state = CheckoutValid
	c.confirmation = fmt.Sprintf("Thank you, %s! Your order has been placed successfully.", trimmed.Name)
	c.form = domain.ContactForm{}
	return nil
}

func (c *Checkout) State() CheckoutState {
	return c.state
}

func (c *Checkout) View() CheckoutView {
	return CheckoutView{
		State:        c.state,
		Form:         c.form,
		Errors:       c.errors,
		Confirmation: c.confirmation,
	}
}
