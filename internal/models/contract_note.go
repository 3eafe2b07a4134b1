package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a contract note trade.
type TransactionType string

const (
	TransactionUnknown TransactionType = ""
	TransactionBuy     TransactionType = "BUY"
	TransactionSell    TransactionType = "SELL"
)

// ContractNote is a trade confirmation recovered from a PDF.
type ContractNote struct {
	TransactionType TransactionType `json:"transactionType"`
	ContractNoteID  string          `json:"contractNoteId"`
	Isin            string          `json:"isin"`
	OrderTime       time.Time       `json:"orderTime"`
	UnitName        string          `json:"unitName"`
	UnitType        string          `json:"unitType"`
	Quantity        decimal.Decimal `json:"quantity"`

	// UnitPrice is in UnitCurrency; UnitPriceGBP is the same price converted.
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	UnitCurrency string          `json:"unitCurrency"`
	UnitPriceGBP decimal.Decimal `json:"unitPriceGbp"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`

	Commission  decimal.Decimal `json:"commission"`
	FxCharge    decimal.Decimal `json:"fxCharge"`
	TransferFee decimal.Decimal `json:"transferFee"`

	TotalGBPExcludingFees decimal.Decimal `json:"totalGbpExcludingFees"`
	TotalGBPIncludingFees decimal.Decimal `json:"totalGbpIncludingFees"`

	Venue          string    `json:"venue"`
	OrderType      string    `json:"orderType"`
	Symbol         string    `json:"symbol"`
	Account        string    `json:"account"`
	SettlementDate time.Time `json:"settlementDate"`
	Note           string    `json:"note"`
	ClientName     string    `json:"clientName"`
	ClientAddress  []string  `json:"clientAddress"`
}

// Fees returns the sum of all fees charged on the trade.
func (c *ContractNote) Fees() decimal.Decimal {
	return c.Commission.Add(c.FxCharge).Add(c.TransferFee)
}
