package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/models"
)

// CSVWriter writes platform records in CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes contract notes to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, notes []*models.ContractNote) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.WriteContractNotes(f, notes)
}

var contractNoteColumns = []string{
	"Contract Note", "Type", "Order Time", "Settlement Date", "Account", "Symbol", "ISIN",
	"Unit Name", "Unit Type", "Quantity", "Unit Price", "Currency", "Unit Price GBP",
	"Exchange Rate", "Commission", "FX Charge", "Transfer Stamp", "Total Excl Fees",
	"Total Incl Fees", "Order Type", "Venue", "Note",
}

// WriteContractNotes writes one row per note.
func (w *CSVWriter) WriteContractNotes(out io.Writer, notes []*models.ContractNote) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader && len(notes) > 0 && notes[0].ClientName != "" {
		writer.Write([]string{"# Client", cell(notes[0].ClientName)})
	}

	if err := writer.Write(contractNoteColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, n := range notes {
		row := []string{
			cell(n.ContractNoteID),
			string(n.TransactionType),
			timestamp(n.OrderTime),
			day(n.SettlementDate),
			cell(n.Account),
			cell(n.Symbol),
			cell(n.Isin),
			cell(n.UnitName),
			cell(n.UnitType),
			n.Quantity.String(),
			n.UnitPrice.String(),
			cell(n.UnitCurrency),
			n.UnitPriceGBP.String(),
			n.ExchangeRate.String(),
			amount(n.Commission),
			amount(n.FxCharge),
			amount(n.TransferFee),
			amount(n.TotalGBPExcludingFees),
			amount(n.TotalGBPIncludingFees),
			cell(n.OrderType),
			cell(n.Venue),
			cell(n.Note),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTransactions writes an account's transaction history. Blank unit
// costs and quantities stay blank.
func (w *CSVWriter) WriteTransactions(out io.Writer, account int, txns []models.Transaction) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		writer.Write([]string{"# Account", fmt.Sprint(account)})
	}

	header := []string{"Trade Date", "Settle Date", "Reference", "Description", "Unit Cost", "Quantity", "Value"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range txns {
		row := []string{
			timestamp(t.TradeDate),
			day(t.SettleDate),
			cell(t.Reference),
			cell(t.Description),
			optional(t.UnitCost),
			optional(t.Quantity),
			amount(t.Value),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteHoldings writes the positions of one account.
func (w *CSVWriter) WriteHoldings(out io.Writer, account int, holdings []models.Holding) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		writer.Write([]string{"# Account", fmt.Sprint(account)})
	}

	header := []string{"ID", "Name", "Unit Type", "Units", "Price", "Value", "Cost", "Gain/Loss", "Gain/Loss %", "Outcome"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, h := range holdings {
		row := []string{
			cell(h.ID),
			cell(h.Name),
			cell(h.UnitType),
			h.UnitsHeld.String(),
			h.Price.String(),
			amount(h.Value),
			amount(h.Cost),
			amount(h.GainsLoss.Amount),
			h.GainsLoss.Percentage.String(),
			string(h.GainsLoss.Outcome()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optional(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(locale.DayMonthYear)
}

// timestamp omits the clock when it is midnight, which is how dates
// without a time are stored.
func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(locale.DayMonthYear)
	}
	return t.Format(locale.DayMonthYear + " " + locale.ClockTime)
}
