package domain

import (
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by the remote product API. Price is in USD.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
}

// Categories returns the distinct categories of products in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))

	var result []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		result = append(result, p.Category)
	}

	return result
}

// CategoryLabel upper-cases the first letter of a category and leaves the rest alone.
func CategoryLabel(category string) string {
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError {
		return category
	}
	return string(unicode.ToUpper(r)) + category[size:]
}

// FilterByCategory keeps products of the given category; an empty category keeps all.
func FilterByCategory(products []Product, category string) []Product {
	if category == "" {
		return products
	}

	var result []Product
	for _, p := range products {
		if p.Category == category {
			result = append(result, p)
		}
	}

	return result
}

func FindProduct(products []Product, id int64) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
