package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/models"
)

// link path segment holding the account or stock id
const idSegment = 3

// ListAccounts reads the portfolio overview table.
func ListAccounts(doc *goquery.Document) ([]models.Account, error) {
	table, err := findTable(doc, "#portfolio")
	if err != nil {
		return nil, err
	}

	rows := bodyRows(table)
	accounts := make([]models.Account, 0, len(rows))
	for i, row := range rows {
		a, err := parseAccount(row)
		if err != nil {
			return nil, fmt.Errorf("account row %d: %w", i, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func parseAccount(row *goquery.Selection) (models.Account, error) {
	var a models.Account

	href, err := anchorHref(row, 0, "account link")
	if err != nil {
		return a, err
	}
	segment, err := linkSegment(href, idSegment)
	if err != nil {
		return a, missing("account link", err.Error())
	}
	if a.ID, err = strconv.Atoi(segment); err != nil {
		return a, missing("account link", fmt.Sprintf("id %q is not a number", segment))
	}

	if a.Name, err = text(row, 0, "account name", "a"); err != nil {
		return a, err
	}
	if a.StockValue, err = currencyCell(row, 1, "stock value", "a"); err != nil {
		return a, err
	}
	if a.CashValue, err = currencyCell(row, 2, "cash value"); err != nil {
		return a, err
	}
	if a.TotalValue, err = currencyCell(row, 3, "total value", "strong"); err != nil {
		return a, err
	}
	if a.Available, err = currencyCell(row, 4, "available", "a"); err != nil {
		return a, err
	}
	return a, nil
}

// ListHoldings reads every holdings table of an account summary page, in
// page order.
func ListHoldings(doc *goquery.Document) ([]models.Holding, error) {
	tables := doc.Find("table.holdings-table")
	if tables.Length() == 0 {
		return nil, missing("table.holdings-table", "not found")
	}

	var holdings []models.Holding
	var err error
	tables.EachWithBreak(func(_ int, table *goquery.Selection) bool {
		for _, row := range bodyRows(table) {
			var h models.Holding
			if h, err = parseHolding(row); err != nil {
				err = fmt.Errorf("holding row %d: %w", len(holdings), err)
				return false
			}
			holdings = append(holdings, h)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

func parseHolding(row *goquery.Selection) (models.Holding, error) {
	var h models.Holding

	href, err := anchorHref(row, 0, "stock link")
	if err != nil {
		return h, err
	}
	if h.ID, err = linkSegment(href, idSegment); err != nil {
		return h, missing("stock link", err.Error())
	}

	nameCell, err := cell(row, 1, "stock name")
	if err != nil {
		return h, err
	}
	h.Name, h.UnitType = splitNameAndType(nameCell.Text())

	if h.UnitsHeld, err = numberCell(row, 2, "units held"); err != nil {
		return h, err
	}
	if h.Price, err = numberCell(row, 3, "price", "span"); err != nil {
		return h, err
	}
	if h.Value, err = currencyCell(row, 4, "value", "span", "span"); err != nil {
		return h, err
	}
	if h.Cost, err = currencyCell(row, 5, "cost", "span"); err != nil {
		return h, err
	}
	if h.GainsLoss.Amount, err = currencyCell(row, 16, "gain/loss", "span"); err != nil {
		return h, err
	}

	pct, err := text(row, 17, "gain/loss percentage", "span")
	if err != nil {
		return h, err
	}
	if h.GainsLoss.Percentage, err = locale.ParsePercentage(pct); err != nil {
		return h, fmt.Errorf("gain/loss percentage: %w", err)
	}
	return h, nil
}

// splitNameAndType takes the first and last non-blank lines of the name
// cell. A single line is used for both.
func splitNameAndType(s string) (name, unitType string) {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if l := locale.Clean(line); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], lines[len(lines)-1]
}

// GetCashSummary reads the cash breakdown table. The total comes from the
// footer.
func GetCashSummary(doc *goquery.Document) (models.CashSummary, error) {
	var s models.CashSummary

	table, err := findTable(doc, ".cash-generic-table")
	if err != nil {
		return s, err
	}

	rows := bodyRows(table)
	if len(rows) < 3 {
		return s, missing("table.cash-generic-table tbody", fmt.Sprintf("expected 3 rows, found %d", len(rows)))
	}
	footer := table.ChildrenFiltered("tfoot").ChildrenFiltered("tr").First()
	if footer.Length() == 0 {
		return s, missing("table.cash-generic-table tfoot", "no footer row")
	}

	targets := []struct {
		row   *goquery.Selection
		field string
		dst   *decimal.Decimal
	}{
		{rows[0], "capital cash", &s.CapitalCash},
		{rows[1], "income loyalty bonus", &s.IncomeLoyaltyBonus},
		{rows[2], "fixed rate offers", &s.FixedRateOffers},
		{footer, "total cash", &s.Total},
	}
	for _, t := range targets {
		last := t.row.ChildrenFiltered("td").Last()
		if last.Length() == 0 {
			return s, missing(t.field, "row has no cells")
		}
		v, err := locale.ParseCurrency(last.Text())
		if err != nil {
			return s, fmt.Errorf("%s: %w", t.field, err)
		}
		*t.dst = v
	}
	return s, nil
}
