package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one line of an account's capital transaction history.
type Transaction struct {
	TradeDate     time.Time           `json:"tradeDate"`
	SettleDate    time.Time           `json:"settleDate"`
	Reference     string              `json:"reference"`
	ReferenceLink string              `json:"referenceLink,omitempty"` // empty when the reference is not a link
	Description   string              `json:"description"`
	UnitCost      decimal.NullDecimal `json:"unitCost"`
	Quantity      decimal.NullDecimal `json:"quantity"`
	Value         decimal.Decimal     `json:"value"`
}
