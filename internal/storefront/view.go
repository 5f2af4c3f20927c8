package storefront

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/currency"
)

// Views are plain data for templates and JSON; prices are already converted and formatted.

type CurrencyOption struct {
	Code     string
	Symbol   string
	Selected bool
}

type CategoryOption struct {
	Value    string
	Label    string
	Selected bool
}

type ProductCard struct {
	ID       int64
	Title    string
	Image    string
	Category string
	Price    string
}

type ProductDetail struct {
	ID          int64
	Image       string
	Title       string
	Description string
	Price       string
}

type CatalogView struct {
	State      CatalogState
	Failure    string
	Notice     string
	Category   string
	Categories []CategoryOption
	Currency   string
	Currencies []CurrencyOption
	Products   []ProductCard
	CartCount  int
	Detail     *ProductDetail
}

type CartRow struct {
	Index     int
	ID        int64
	Title     string
	Image     string
	UnitPrice string
	Quantity  int
	Subtotal  string
}

type CartView struct {
	Currency   string
	Currencies []CurrencyOption
	Rows       []CartRow
	Total      string
	Count      int
	Empty      bool
}

type CheckoutView struct {
	State        CheckoutState
	Form         domain.ContactForm
	Errors       domain.FieldErrors
	Confirmation string
}

func currencyOptions(selected currency.Unit) []CurrencyOption {
	options := make([]CurrencyOption, 0, len(domain.SupportedCurrencies))
	for _, unit := range domain.SupportedCurrencies {
		options = append(options, CurrencyOption{
			Code:     unit.String(),
			Symbol:   domain.Symbol(unit),
			Selected: unit == selected,
		})
	}
	return options
}
