package parser

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/models"
)

// Labels printed on contract notes.
const (
	pencePriceLabel   = "Price (pence)"
	priceLabelPrefix  = "Price"
	exchangeRateLabel = "Exchange rate"

	commissionLabel    = "Commission"
	fxChargeLabel      = "FX Charge"
	transferStampLabel = "Transfer Stamp"

	orderTypeSuffix = "Order"
	venuePrefix     = "Venue of Execution:"
	stockCodePrefix = "STOCK CODE:"
)

var hundred = decimal.NewFromInt(100)

// number parses a field value in the note's en-GB format.
func number(f Field, text string) (decimal.Decimal, error) {
	d, err := locale.ParseNumber(text)
	if err != nil {
		return decimal.Zero, &common.DocumentError{Element: f.String(), Detail: err.Error()}
	}
	return d, nil
}

func date(f Field, text string) (time.Time, error) {
	t, err := locale.ParseExact(locale.DayMonthYear, text)
	if err != nil {
		return time.Time{}, &common.DocumentError{Element: f.String(), Detail: err.Error()}
	}
	return t, nil
}

// orderTimestamp combines the order date with its hour:minute time, when
// one was printed.
func orderTimestamp(day, clock string) (time.Time, error) {
	t, err := date(OrderDate, day)
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(clock) == "" {
		return t, nil
	}
	hm, err := locale.ParseExact(locale.ClockTime, clock)
	if err != nil {
		return time.Time{}, &common.DocumentError{Element: OrderTime.String(), Detail: err.Error()}
	}
	return t.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute), nil
}

func transactionType(text string) (models.TransactionType, error) {
	switch {
	case strings.Contains(text, "BOUGHT"):
		return models.TransactionBuy, nil
	case strings.Contains(text, "SOLD"):
		return models.TransactionSell, nil
	}
	return models.TransactionUnknown, &common.TransactionTypeError{Text: text}
}

func joinNote(first, second string) string {
	if strings.TrimSpace(first) == "" {
		return second
	}
	if second == "" {
		return first
	}
	return first + " " + second
}

// applyPriceDetail reads one price detail pair. The label decides what the
// value is: a pence price, a price in the label's currency or the
// exchange rate.
func applyPriceDetail(note *models.ContractNote, label string, valueField Field, value string) error {
	switch {
	case label == pencePriceLabel:
		d, err := number(valueField, value)
		if err != nil {
			return err
		}
		note.UnitPriceGBP = d.Div(hundred)
	case strings.HasPrefix(label, priceLabelPrefix):
		d, err := number(valueField, value)
		if err != nil {
			return err
		}
		note.UnitPrice = d
		note.UnitCurrency = labelCurrency(label)
	case label == exchangeRateLabel:
		d, err := number(valueField, value)
		if err != nil {
			return err
		}
		note.ExchangeRate = d
	}
	return nil
}

// labelCurrency takes the last word of a label such as "Price (USD)".
func labelCurrency(label string) string {
	words := strings.Fields(label)
	if len(words) == 0 {
		return ""
	}
	return strings.NewReplacer("(", "", ")", "").Replace(words[len(words)-1])
}

// applyFee reads one fee pair. Fees not listed here are not on every note
// and are skipped.
func applyFee(note *models.ContractNote, label string, valueField Field, value string) error {
	var target *decimal.Decimal
	switch label {
	case commissionLabel:
		target = &note.Commission
	case fxChargeLabel:
		target = &note.FxCharge
	case transferStampLabel:
		target = &note.TransferFee
	default:
		return nil
	}
	d, err := number(valueField, value)
	if err != nil {
		return err
	}
	*target = d
	return nil
}

func applyOrderDetail(note *models.ContractNote, text string) {
	switch {
	case text == "":
	case strings.HasSuffix(text, orderTypeSuffix):
		note.OrderType = text
	case strings.HasPrefix(text, venuePrefix):
		note.Venue = strings.TrimSpace(strings.TrimPrefix(text, venuePrefix))
	}
}
