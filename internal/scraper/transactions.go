package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/models"
)

// TransactionOptions controls how the transaction history is read.
type TransactionOptions struct {
	// ValueFallback is used when the value cell is blank or not a number.
	ValueFallback decimal.Decimal
}

// DefaultTransactionOptions falls back to a zero value.
func DefaultTransactionOptions() TransactionOptions {
	return TransactionOptions{ValueFallback: decimal.Zero}
}

// ListTransactions reads the capital transaction history table. Unit cost
// and quantity are left unset when their cells do not hold a number.
func ListTransactions(doc *goquery.Document, opts TransactionOptions) ([]models.Transaction, error) {
	table, err := findTable(doc, ".transaction-history-table")
	if err != nil {
		return nil, err
	}

	rows := bodyRows(table)
	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := parseTransaction(row, opts)
		if err != nil {
			return nil, fmt.Errorf("transaction row %d: %w", i, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func parseTransaction(row *goquery.Selection, opts TransactionOptions) (models.Transaction, error) {
	var tx models.Transaction

	cells := row.ChildrenFiltered("td")
	if cells.Length() < 7 {
		return tx, missing("transaction row", fmt.Sprintf("expected 7 cells, found %d", cells.Length()))
	}
	at := func(i int) string { return locale.Clean(cells.Eq(i).Text()) }

	var err error
	if tx.TradeDate, err = locale.ParseDate(at(0)); err != nil {
		return tx, fmt.Errorf("trade date: %w", err)
	}
	if tx.SettleDate, err = locale.ParseDate(at(1)); err != nil {
		return tx, fmt.Errorf("settle date: %w", err)
	}

	ref := cells.Eq(2)
	if link := ref.ChildrenFiltered("a").First(); link.Length() > 0 {
		tx.Reference = locale.Clean(link.Text())
		tx.ReferenceLink, _ = link.Attr("href")
	} else {
		tx.Reference = locale.Clean(ref.Text())
	}

	tx.Description = at(3)
	tx.UnitCost = locale.ParseNumberOrNull(at(4))
	tx.Quantity = locale.ParseNumberOrNull(at(5))
	tx.Value = locale.ParseNumberOrDefault(at(6), opts.ValueFallback)
	return tx, nil
}
