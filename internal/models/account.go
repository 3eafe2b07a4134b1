package models

import "github.com/shopspring/decimal"

// Account is one row of the portfolio overview.
type Account struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	StockValue decimal.Decimal `json:"stockValue"`
	CashValue  decimal.Decimal `json:"cashValue"`
	TotalValue decimal.Decimal `json:"totalValue"`
	Available  decimal.Decimal `json:"available"`
}

// CashSummary holds the cash breakdown of an account. Total is read from the
// table footer, not summed from the other fields.
type CashSummary struct {
	CapitalCash        decimal.Decimal `json:"capitalCash"`
	IncomeLoyaltyBonus decimal.Decimal `json:"incomeLoyaltyBonus"`
	FixedRateOffers    decimal.Decimal `json:"fixedRateOffers"`
	Total              decimal.Decimal `json:"total"`
}

// ClientAccount is a linked client login that can be switched to.
type ClientAccount struct {
	ClientNumber      int    `json:"clientNumber"`
	Name              string `json:"name"`
	CurrentlySelected bool   `json:"currentlySelected"`
}
