package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is selected on every page load until the user picks another one.
var DefaultCurrency = currency.USD

// FallbackSymbol is shown for currencies missing from the symbol table.
const FallbackSymbol = "$"

var afghani = currency.MustParseISO("AFN")

// SupportedCurrencies is the canonical, ordered list of selectable currencies.
var SupportedCurrencies = []currency.Unit{
	currency.USD,
	currency.EUR,
	currency.GBP,
	currency.JPY,
	currency.INR,
	afghani,
}

var symbols = map[currency.Unit]string{
	currency.USD: "$",
	currency.EUR: "€",
	currency.GBP: "£",
	currency.JPY: "¥",
	currency.INR: "₹",
	afghani:      "؋",
}

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// String renders money the way price tags show it, e.g. "€ 9.00".
func (m Money) String() string {
	return Symbol(m.Currency) + " " + m.Amount.StringFixed(2)
}

func Symbol(unit currency.Unit) string {
	if s, ok := symbols[unit]; ok {
		return s
	}
	return FallbackSymbol
}

func ParseCurrency(code string) (currency.Unit, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return unit, nil
}

// RateTable maps an ISO currency code to its multiplier against USD.
type RateTable map[string]decimal.Decimal

// Rate returns the multiplier for unit, or 1 when the table has no entry.
func (t RateTable) Rate(unit currency.Unit) decimal.Decimal {
	if r, ok := t[unit.String()]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

// Convert turns a USD amount into unit using table, rounded half away from zero to cents.
func Convert(amountUSD decimal.Decimal, unit currency.Unit, table RateTable) Money {
	return Money{
		Amount:   amountUSD.Mul(table.Rate(unit)).Round(2),
		Currency: unit,
	}
}
