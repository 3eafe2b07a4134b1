package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/writer"
)

type loginCheckCmd struct{}

func (*loginCheckCmd) Name() string     { return "login-check" }
func (*loginCheckCmd) Synopsis() string { return "log in with the HL_* credentials and report the result" }
func (*loginCheckCmd) Usage() string {
	return `login-check

  Runs both login stages using HL_USERNAME, HL_PASSWORD, HL_BIRTHDAY and
  HL_SECURITY_CODE, read from the environment or the -env file.
`
}

func (*loginCheckCmd) SetFlags(*flag.FlagSet) {}

func (*loginCheckCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c, err := session(ctx)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(stdout, "Logged in (%s)\n", c.AuthState())
	return subcommands.ExitSuccess
}

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts of the portfolio" }
func (*accountsCmd) Usage() string {
	return `accounts

  Lists every account with its stock, cash and total values.
`
}

func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c, err := session(ctx)
	if err != nil {
		return fail("%v", err)
	}
	accounts, err := c.Accounts.List(ctx)
	if err != nil {
		return fail("listing accounts: %v", err)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tName\tStock\tCash\tTotal\tAvailable\t")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n", a.ID, a.Name,
			writer.Sterling(a.StockValue), writer.Sterling(a.CashValue),
			writer.Sterling(a.TotalValue), writer.Sterling(a.Available))
	}
	tw.Flush()
	return subcommands.ExitSuccess
}

type holdingsCmd struct {
	account int
	csv     bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list the holdings of an account" }
func (*holdingsCmd) Usage() string {
	return `holdings -account <id> [-csv]

  Lists the stocks and funds held in the account.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.account, "account", 0, "Account ID, as shown by the accounts command (required)")
	f.BoolVar(&c.csv, "csv", false, "Write CSV instead of a table")
}

func (c *holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account <= 0 {
		return usage("-account is required")
	}
	cl, err := session(ctx)
	if err != nil {
		return fail("%v", err)
	}
	holdings, err := cl.Accounts.Holdings(ctx, c.account)
	if err != nil {
		return fail("listing holdings: %v", err)
	}

	if c.csv {
		if err := (&writer.CSVWriter{IncludeHeader: true}).WriteHoldings(stdout, c.account, holdings); err != nil {
			return fail("%v", err)
		}
		return subcommands.ExitSuccess
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tUnits\tPrice (p)\tValue\tCost\tGain/Loss\t%\t")
	for _, h := range holdings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", h.ID, h.Name, h.UnitsHeld, h.Price,
			writer.Sterling(h.Value), writer.Sterling(h.Cost),
			writer.Sterling(h.GainsLoss.Amount), h.GainsLoss.Percentage.StringFixed(2))
	}
	tw.Flush()
	return subcommands.ExitSuccess
}

type cashCmd struct {
	account int
}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "show the cash summary of an account" }
func (*cashCmd) Usage() string {
	return `cash -account <id>
`
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.account, "account", 0, "Account ID (required)")
}

func (c *cashCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account <= 0 {
		return usage("-account is required")
	}
	cl, err := session(ctx)
	if err != nil {
		return fail("%v", err)
	}
	cash, err := cl.Accounts.CashSummary(ctx, c.account)
	if err != nil {
		return fail("reading cash summary: %v", err)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Capital cash\t%s\n", writer.Sterling(cash.CapitalCash))
	fmt.Fprintf(tw, "Income & loyalty bonus\t%s\n", writer.Sterling(cash.IncomeLoyaltyBonus))
	fmt.Fprintf(tw, "Fixed rate offers\t%s\n", writer.Sterling(cash.FixedRateOffers))
	fmt.Fprintf(tw, "Total\t%s\n", writer.Sterling(cash.Total))
	tw.Flush()
	return subcommands.ExitSuccess
}

type transactionsCmd struct {
	account int
	csv     bool
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list the capital transactions of an account" }
func (*transactionsCmd) Usage() string {
	return `transactions -account <id> [-csv]

  Lists the account's capital transaction history, newest first as shown
  on the site.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.account, "account", 0, "Account ID (required)")
	f.BoolVar(&c.csv, "csv", false, "Write CSV instead of a table")
}

func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account <= 0 {
		return usage("-account is required")
	}
	cl, err := session(ctx)
	if err != nil {
		return fail("%v", err)
	}
	txns, err := cl.Accounts.Transactions(ctx, c.account)
	if err != nil {
		return fail("listing transactions: %v", err)
	}

	if c.csv {
		if err := (&writer.CSVWriter{IncludeHeader: true}).WriteTransactions(stdout, c.account, txns); err != nil {
			return fail("%v", err)
		}
		return subcommands.ExitSuccess
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Trade date\tSettle date\tReference\tDescription\tValue\t")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			t.TradeDate.Format(locale.DayMonthYear), t.SettleDate.Format(locale.DayMonthYear),
			t.Reference, t.Description, writer.Sterling(t.Value))
	}
	tw.Flush()
	return subcommands.ExitSuccess
}
