package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGainsLossOutcome(t *testing.T) {
	tests := []struct {
		pct  string
		want Outcome
	}{
		{"12.5", OutcomeProfit},
		{"-0.01", OutcomeLoss},
		{"0", OutcomeBreakeven},
	}

	for _, tt := range tests {
		t.Run(tt.pct, func(t *testing.T) {
			g := GainsLoss{Percentage: decimal.RequireFromString(tt.pct)}
			assert.Equal(t, tt.want, g.Outcome())
		})
	}
}

func TestGainsLossOutcomeIgnoresAmount(t *testing.T) {
	g := GainsLoss{Amount: decimal.NewFromInt(-50), Percentage: decimal.NewFromInt(3)}
	assert.Equal(t, OutcomeProfit, g.Outcome())
}

func TestContractNoteFees(t *testing.T) {
	n := ContractNote{
		Commission:  decimal.RequireFromString("11.95"),
		FxCharge:    decimal.RequireFromString("1.10"),
		TransferFee: decimal.RequireFromString("0.50"),
	}
	assert.Equal(t, "13.55", n.Fees().String())
}
