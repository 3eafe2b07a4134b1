package models

import "github.com/shopspring/decimal"

// Outcome classifies a holding's gain or loss.
type Outcome string

const (
	OutcomeProfit    Outcome = "profit"
	OutcomeLoss      Outcome = "loss"
	OutcomeBreakeven Outcome = "breakeven"
)

// GainsLoss is the unrealised gain or loss of a holding.
type GainsLoss struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Outcome is decided by the sign of Percentage alone; it is not checked
// against Value minus Cost.
func (g GainsLoss) Outcome() Outcome {
	switch g.Percentage.Sign() {
	case 1:
		return OutcomeProfit
	case -1:
		return OutcomeLoss
	default:
		return OutcomeBreakeven
	}
}

// Holding is a stock or fund position inside an account.
type Holding struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitType  string          `json:"unitType"`
	UnitsHeld decimal.Decimal `json:"unitsHeld"`
	Price     decimal.Decimal `json:"price"`
	Value     decimal.Decimal `json:"value"`
	Cost      decimal.Decimal `json:"cost"`
	GainsLoss GainsLoss       `json:"gainsLoss"`
}
