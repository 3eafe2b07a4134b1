// Package writer renders platform records as CSV and as display text.
package writer

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats an amount in the given ISO currency, for example
// "£1,234.56". Unknown currency codes fall back to the plain amount
// followed by the code.
func Money(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return strings.TrimSpace(amount.StringFixed(2) + " " + currency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// Sterling formats an amount in pounds.
func Sterling(amount decimal.Decimal) string {
	return Money(amount, money.GBP)
}

// cell guards free text against spreadsheet formula execution by quoting
// values that start with a formula trigger.
func cell(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	switch trimmed[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}
