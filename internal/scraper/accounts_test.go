package scraper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/models"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestListAccounts_OneRow(t *testing.T) {
	page := newTable().withID("portfolio").
		row(link(accountURL(999), "0"), link(accountURL(999), "£1.00"), "£2.00", strong("£3.00"), link(accountURL(999), "£4.00")).
		page()

	accounts, err := ListAccounts(MustLoad(page))
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	a := accounts[0]
	assert.Equal(t, 999, a.ID)
	assert.Equal(t, "0", a.Name)
	assertDecimal(t, "1.00", a.StockValue, "stock value")
	assertDecimal(t, "2.00", a.CashValue, "cash value")
	assertDecimal(t, "3.00", a.TotalValue, "total value")
	assertDecimal(t, "4.00", a.Available, "available")
}

func TestListAccounts_LocaleFormatting(t *testing.T) {
	page := newTable().withID("portfolio").
		row(link(accountURL(12), "Stocks &amp; Shares ISA"), link(accountURL(12), "£12,345.67"),
			"-£0.50", strong("£12,345.17"), link(accountURL(12), "£1,000,000.01")).
		row(link("/my-accounts/account_summary/account/13", "\n  SIPP\n"), link(accountURL(13), "£0.00"),
			"£7.10", strong("£7.10"), link(accountURL(13), "£7.10")).
		page()

	accounts, err := ListAccounts(MustLoad(page))
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "Stocks & Shares ISA", accounts[0].Name)
	assertDecimal(t, "12345.67", accounts[0].StockValue, "stock value")
	assertDecimal(t, "-0.50", accounts[0].CashValue, "cash value")
	assertDecimal(t, "1000000.01", accounts[0].Available, "available")

	assert.Equal(t, 13, accounts[1].ID)
	assert.Equal(t, "SIPP", accounts[1].Name)
}

func TestListAccounts_RoundTrip(t *testing.T) {
	want := []models.Account{
		{ID: 1, Name: "Vantage ISA", StockValue: decimal.RequireFromString("100.25"),
			CashValue: decimal.RequireFromString("3.5"), TotalValue: decimal.RequireFromString("103.75"),
			Available: decimal.RequireFromString("3.5")},
		{ID: 42, Name: "Fund & Share Account", StockValue: decimal.Zero,
			CashValue: decimal.RequireFromString("0.01"), TotalValue: decimal.RequireFromString("0.01"),
			Available: decimal.Zero},
	}

	b := newTable().withID("portfolio")
	for _, a := range want {
		b.row(link(accountURL(a.ID), strings.ReplaceAll(a.Name, "&", "&amp;")), link(accountURL(a.ID), gbp(a.StockValue)),
			gbp(a.CashValue), strong(gbp(a.TotalValue)), link(accountURL(a.ID), gbp(a.Available)))
	}

	got, err := ListAccounts(MustLoad(b.page()))
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assertDecimal(t, want[i].StockValue.String(), got[i].StockValue, "stock value")
		assertDecimal(t, want[i].CashValue.String(), got[i].CashValue, "cash value")
		assertDecimal(t, want[i].TotalValue.String(), got[i].TotalValue, "total value")
		assertDecimal(t, want[i].Available.String(), got[i].Available, "available")
	}
}

func TestListAccounts_EmptyBody(t *testing.T) {
	accounts, err := ListAccounts(MustLoad(newTable().withID("portfolio").page()))
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestListAccounts_Malformed(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no table", "<html><body><p>Maintenance</p></body></html>"},
		{"wrong id", newTable().withID("other").row("a").page()},
		{"missing cells", newTable().withID("portfolio").row(link(accountURL(1), "ISA"), link(accountURL(1), "£1.00")).page()},
		{"no link in first cell", newTable().withID("portfolio").row("ISA", link(accountURL(1), "£1.00"), "£2.00", strong("£3.00"), link(accountURL(1), "£4.00")).page()},
		{"total not in strong", newTable().withID("portfolio").row(link(accountURL(1), "ISA"), link(accountURL(1), "£1.00"), "£2.00", "£3.00", link(accountURL(1), "£4.00")).page()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ListAccounts(MustLoad(tt.page))
			assert.ErrorIs(t, err, common.ErrUnrecognizedDocument)
		})
	}
}

func holdingRow(id, nameCell, units, price, value, cost, gain, pct string) []string {
	cells := []string{
		link("https://online.hl.co.uk/shares/shares-search-results/"+id, "x"),
		nameCell, units, span(price), span(span(value)), span(cost),
	}
	for i := 6; i < 16; i++ {
		cells = append(cells, "")
	}
	return append(cells, span(gain), span(pct))
}

func TestListHoldings_OneRow(t *testing.T) {
	page := newTable().withClass("holdings-table").
		row(append([]string{link(accountURL(999), "0"), link(accountURL(999), "stock\ntype"),
			"2", span("3.00"), span(span("4.00")), span("5.00"),
			"", "", "", "", "", "", "", "", "", ""}, span("16.00"), span("17.00"))...).
		page()

	holdings, err := ListHoldings(MustLoad(page))
	require.NoError(t, err)
	require.Len(t, holdings, 1)

	h := holdings[0]
	assert.Equal(t, "999", h.ID)
	assert.Equal(t, "stock", h.Name)
	assert.Equal(t, "type", h.UnitType)
	assertDecimal(t, "2", h.UnitsHeld, "units")
	assertDecimal(t, "3.00", h.Price, "price")
	assertDecimal(t, "4.00", h.Value, "value")
	assertDecimal(t, "5.00", h.Cost, "cost")
	assertDecimal(t, "16.00", h.GainsLoss.Amount, "gain")
	assertDecimal(t, "17.00", h.GainsLoss.Percentage, "percentage")
	assert.Equal(t, models.OutcomeProfit, h.GainsLoss.Outcome())
}

func TestListHoldings_SeveralTablesKeepOrder(t *testing.T) {
	shares := newTable().withClass("holdings-table").
		row(holdingRow("b/bt-group", "BT Group plc\nOrdinary 5p", "1,500", "123.45", "£1,851.75", "£2,000.00", "-£148.25", "-7.41%")...).
		row(holdingRow("l/lloyds", "Lloyds Banking Group\nOrdinary 10p", "10,000", "45.10", "£4,510.00", "£4,000.00", "£510.00", "12.75%")...)
	funds := newTable().withClass("holdings-table funds").
		row(holdingRow("f/fundsmith", "Fundsmith Equity\nClass I - Accumulation", "12.3456", "612.34", "£75.60", "£75.60", "£0.00", "0.00%")...)

	page := "<html><body>" + shares.String() + funds.String() + "</body></html>"
	holdings, err := ListHoldings(MustLoad(page))
	require.NoError(t, err)
	require.Len(t, holdings, 3)

	assert.Equal(t, []string{"bt-group", "lloyds", "fundsmith"}, []string{holdings[0].ID, holdings[1].ID, holdings[2].ID})
	assert.Equal(t, "BT Group plc", holdings[0].Name)
	assert.Equal(t, "Ordinary 5p", holdings[0].UnitType)
	assertDecimal(t, "1500", holdings[0].UnitsHeld, "units")
	assertDecimal(t, "-148.25", holdings[0].GainsLoss.Amount, "gain")
	assert.Equal(t, models.OutcomeLoss, holdings[0].GainsLoss.Outcome())
	assertDecimal(t, "12.3456", holdings[2].UnitsHeld, "units")
	assert.Equal(t, "Class I - Accumulation", holdings[2].UnitType)
	assert.Equal(t, models.OutcomeBreakeven, holdings[2].GainsLoss.Outcome())
}

func gbp(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-£" + d.Abs().StringFixed(2)
	}
	return "£" + d.StringFixed(2)
}

func TestListHoldings_RoundTrip(t *testing.T) {
	want := []models.Holding{
		{ID: "bt-group", Name: "BT Group plc", UnitType: "Ordinary 5p",
			UnitsHeld: decimal.RequireFromString("1500"), Price: decimal.RequireFromString("123.45"),
			Value: decimal.RequireFromString("1851.75"), Cost: decimal.RequireFromString("2000"),
			GainsLoss: models.GainsLoss{Amount: decimal.RequireFromString("-148.25"), Percentage: decimal.RequireFromString("-7.41")}},
		{ID: "fundsmith", Name: "Fundsmith Equity", UnitType: "Class I - Accumulation",
			UnitsHeld: decimal.RequireFromString("12.3456"), Price: decimal.RequireFromString("612.34"),
			Value: decimal.RequireFromString("75.6"), Cost: decimal.RequireFromString("70"),
			GainsLoss: models.GainsLoss{Amount: decimal.RequireFromString("5.6"), Percentage: decimal.RequireFromString("8")}},
	}

	b := newTable().withClass("holdings-table")
	for _, h := range want {
		b.row(holdingRow("x/"+h.ID, h.Name+"\n"+h.UnitType, h.UnitsHeld.String(), h.Price.String(),
			gbp(h.Value), gbp(h.Cost), gbp(h.GainsLoss.Amount), h.GainsLoss.Percentage.StringFixed(2)+"%")...)
	}

	got, err := ListHoldings(MustLoad(b.page()))
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].UnitType, got[i].UnitType)
		assertDecimal(t, want[i].UnitsHeld.String(), got[i].UnitsHeld, "units")
		assertDecimal(t, want[i].Price.String(), got[i].Price, "price")
		assertDecimal(t, want[i].Value.String(), got[i].Value, "value")
		assertDecimal(t, want[i].Cost.String(), got[i].Cost, "cost")
		assertDecimal(t, want[i].GainsLoss.Amount.String(), got[i].GainsLoss.Amount, "gain")
		assertDecimal(t, want[i].GainsLoss.Percentage.String(), got[i].GainsLoss.Percentage, "percentage")
	}
}

func TestListHoldings_Malformed(t *testing.T) {
	_, err := ListHoldings(MustLoad("<html><body></body></html>"))
	assert.ErrorIs(t, err, common.ErrUnrecognizedDocument)

	short := newTable().withClass("holdings-table").row(link(accountURL(1), "x"), "name", "1", span("1"), span(span("1")), span("1")).page()
	_, err = ListHoldings(MustLoad(short))
	assert.ErrorIs(t, err, common.ErrUnrecognizedDocument)

	flatValue := holdingRow("a/b", "n\nt", "1", "1", "1", "1", "1", "1")
	flatValue[4] = "1.00"
	_, err = ListHoldings(MustLoad(newTable().withClass("holdings-table").row(flatValue...).page()))
	assert.ErrorIs(t, err, common.ErrUnrecognizedDocument)
}

func TestGetCashSummary(t *testing.T) {
	page := newTable().withClass("cash-generic-table").
		row("Cash on capital account", "", "£1,250.40").
		row("Income loyalty bonus", "£3.21").
		row("Fixed rate offers", "pending", "£0.00").
		foot("Total cash", "", "£1,300.00").
		page()

	s, err := GetCashSummary(MustLoad(page))
	require.NoError(t, err)
	assertDecimal(t, "1250.40", s.CapitalCash, "capital")
	assertDecimal(t, "3.21", s.IncomeLoyaltyBonus, "income")
	assertDecimal(t, "0", s.FixedRateOffers, "fixed")
	// the footer total is reported as shown, not recomputed
	assertDecimal(t, "1300.00", s.Total, "total")
}

func TestGetCashSummary_Malformed(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no table", "<html></html>"},
		{"two rows", newTable().withClass("cash-generic-table").row("a", "£1").row("b", "£2").foot("t", "£3").page()},
		{"no footer", newTable().withClass("cash-generic-table").row("a", "£1").row("b", "£2").row("c", "£3").page()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetCashSummary(MustLoad(tt.page))
			assert.ErrorIs(t, err, common.ErrUnrecognizedDocument)
		})
	}
}

func TestLinkSegment(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"https://online.hl.co.uk/my-accounts/account_summary/account/22", "22"},
		{"/my-accounts/account_summary/account/22", "22"},
		{"my-accounts/account_summary/account/22", "22"},
		{"https://online.hl.co.uk/shares/search/a/abc-plc?x=1", "abc-plc"},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, err := linkSegment(tt.href, idSegment)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := linkSegment("https://online.hl.co.uk/my-accounts", idSegment)
	assert.Error(t, err, fmt.Sprintf("segment %d", idSegment))
}
