package storefront

import (
	"context"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

// Converter owns the rate table and currency selection of one page controller.
//
// Every refresh is tagged with a generation. Close and newer refreshes bump the
// generation, so a response that arrives late is dropped instead of overwriting
// state that belongs to a torn down or newer page.
type Converter struct {
	source port.RateSource
	log    *zap.Logger

	mu       sync.Mutex
	rates    domain.RateTable
	currency currency.Unit
	gen      uint64
	closed   bool
}

func NewConverter(source port.RateSource, log *zap.Logger) *Converter {
	return &Converter{
		source:   source,
		log:      log,
		rates:    domain.RateTable{},
		currency: domain.DefaultCurrency,
	}
}

// Refresh fetches rates and applies them. A failed fetch is logged and leaves the
// previous table in place.
func (c *Converter) Refresh(ctx context.Context) {
	gen, ok := c.begin()
	if !ok {
		return
	}

	rates, err := c.source.FetchRates(ctx)
	if err != nil {
		c.log.Error("exchange rate fetch failed", zap.Error(err))
		return
	}

	c.apply(gen, rates)
}

// Start runs Refresh in the background. The returned channel is closed when the
// refresh finished, whether or not its result was applied.
func (c *Converter) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		c.Refresh(ctx)
	}()

	return done
}

// Close discards any in-flight refresh. Later refreshes are no-ops.
func (c *Converter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.gen++
}

func (c *Converter) Currency() currency.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.currency
}

func (c *Converter) SetCurrency(unit currency.Unit) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currency = unit
}

// Convert prices a USD amount in the selected currency.
func (c *Converter) Convert(amountUSD decimal.Decimal) domain.Money {
	c.mu.Lock()
	defer c.mu.Unlock()

	return domain.Convert(amountUSD, c.currency, c.rates)
}

func (c *Converter) begin() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, false
	}

	c.gen++
	return c.gen, true
}

func (c *Converter) apply(gen uint64, rates domain.RateTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		c.log.Debug("discarding stale exchange rates", zap.Uint64("generation", gen))
		return
	}

	c.rates = rates
}
