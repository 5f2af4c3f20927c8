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

const (
	MsgLoadFailed  = "Failed to load products."
	MsgAddedToCart = "Added to cart!"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogState int

const (
	CatalogLoading CatalogState = iota
	CatalogLoaded
	CatalogFiltered
	CatalogCurrencyChanged
	CatalogFailed
)

func (s CatalogState) String() string {
	switch s {
	case CatalogLoading:
		return "loading"
	case CatalogLoaded:
		return "loaded"
	case CatalogFiltered:
		return "filtered"
	case CatalogCurrencyChanged:
		return "currency_changed"
	case CatalogFailed:
		return "failed"
	default:
		return fmt.Sprintf("CatalogState(%d)", int(s))
	}
}

// Catalog drives the product listing page of one visitor.
type Catalog struct {
	ownerID  string
	products port.ProductSource
	store    port.CartStore
	conv     *Converter
	log      *zap.Logger

	state     CatalogState
	all       []domain.Product
	shown     []domain.Product
	category  string
	detail    *domain.Product
	notice    string
	cartCount int
}

func NewCatalog(ownerID string, products port.ProductSource, rates port.RateSource, store port.CartStore, log *zap.Logger) *Catalog {
	return &Catalog{
		ownerID:  ownerID,
		products: products,
		store:    store,
		conv:     NewConverter(rates, log),
		log:      log,
		state:    CatalogLoading,
	}
}

// Load fetches the product list, then the exchange rates. A failed product fetch
// moves the catalog to CatalogFailed and is not returned as an error.
func (c *Catalog) Load(ctx context.Context) error {
	c.state = CatalogLoading

	if err := c.RefreshCartCount(ctx); err != nil {
		return err
	}

	products, err := c.products.FetchProducts(ctx)
	if err != nil {
		c.log.Error("failed to fetch products", zap.Error(err))
		c.state = CatalogFailed
		return nil
	}

	c.all = products
	c.shown = products
	c.state = CatalogLoaded

	select {
	case <-c.conv.Start(ctx):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FilterCategory shows only products of category; an empty category shows all.
func (c *Catalog) FilterCategory(category string) {
	if !c.ready() {
		return
	}

	c.category = category
	c.shown = domain.FilterByCategory(c.all, category)
	c.state = CatalogFiltered
}

// ChangeCurrency re-renders the full product list in unit and refreshes the cart count.
func (c *Catalog) ChangeCurrency(ctx context.Context, unit currency.Unit) error {
	c.conv.SetCurrency(unit)

	if c.ready() {
		c.category = ""
		c.shown = c.all
		c.state = CatalogCurrencyChanged
	}

	return c.RefreshCartCount(ctx)
}

// AddToCart increments the product's cart line or adds a new one.
func (c *Catalog) AddToCart(ctx context.Context, productID int64) error {
	product, ok := domain.FindProduct(c.all, productID)
	if !ok {
		return fmt.Errorf("product[%d]: %w", productID, ErrProductNotFound)
	}

	cart, err := c.store.Update(ctx, c.ownerID, func(cart *domain.Cart) error {
		cart.Add(product)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store.Update: %w", err)
	}

	c.log.Info("added to cart",
		zap.String("owner_id", c.ownerID),
		zap.Int64("product_id", productID),
		zap.Int("cart_count", cart.Count()))

	c.Acknowledge()
	c.cartCount = cart.Count()
	return nil
}

// Acknowledge shows the add-to-cart confirmation.
func (c *Catalog) Acknowledge() {
	c.notice = MsgAddedToCart
}

func (c *Catalog) ShowDetail(productID int64) error {
	product, ok := domain.FindProduct(c.all, productID)
	if !ok {
		return fmt.Errorf("product[%d]: %w", productID, ErrProductNotFound)
	}

	c.detail = &product
	return nil
}

func (c *Catalog) CloseDetail() {
	c.detail = nil
}

func (c *Catalog) RefreshCartCount(ctx context.Context) error {
	cart, err := c.store.Load(ctx, c.ownerID)
	if err != nil {
		return fmt.Errorf("store.Load: %w", err)
	}

	c.cartCount = cart.Count()
	return nil
}

func (c *Catalog) State() CatalogState {
	return c.state
}

func (c *Catalog) Close() {
	c.conv.Close()
}

func (c *Catalog) View() CatalogView {
	selected := c.conv.Currency()

	view := CatalogView{
		State:      c.state,
		Notice:     c.notice,
		Category:   c.category,
		Currency:   selected.String(),
		Currencies: currencyOptions(selected),
		CartCount:  c.cartCount,
	}

	if c.state == CatalogFailed {
		view.Failure = MsgLoadFailed
		return view
	}

	for _, category := range domain.Categories(c.all) {
		view.Categories = append(view.Categories, CategoryOption{
			Value:    category,
			Label:    domain.CategoryLabel(category),
			Selected: category == c.category,
		})
	}

	for _, p := range c.shown {
		view.Products = append(view.Products, ProductCard{
			ID:       p.ID,
			Title:    p.Title,
			Image:    p.Image,
			Category: p.Category,
			Price:    c.conv.Convert(p.Price).String(),
		})
	}

	if c.detail != nil {
		view.Detail = &ProductDetail{
			ID:          c.detail.ID,
			Image:       c.detail.Image,
			Title:       c.detail.Title,
			Description: c.detail.Description,
			Price:       c.conv.Convert(c.detail.Price).String(),
		}
	}

	return view
}

func (c *Catalog) ready() bool {
	return c.state != CatalogLoading && c.state != CatalogFailed
}
