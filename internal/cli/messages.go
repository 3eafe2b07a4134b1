package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/insightdelivered/hl-client/internal/locale"
)

type messagesCmd struct {
	year  int
	month int
	id    int
}

func (*messagesCmd) Name() string     { return "messages" }
func (*messagesCmd) Synopsis() string { return "list or read secure messages" }
func (*messagesCmd) Usage() string {
	return `messages [-year <yyyy> [-month <m>]] | -id <message id>

  Without -id lists the inbox, optionally filtered by year and month.
  A month needs a year. With -id prints the message.
`
}

func (c *messagesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Only list messages received in this year")
	f.IntVar(&c.month, "month", 0, "Only list messages received in this month (1-12, needs -year)")
	f.IntVar(&c.id, "id", 0, "Print the message with this ID")
}

func (c *messagesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.month != 0 && c.year == 0 {
		return usage("-month needs -year")
	}

	cl, err := session(ctx)
	if err != nil {
		return fail("%v", err)
	}

	if c.id != 0 {
		m, err := cl.Messages.Get(ctx, c.id)
		if err != nil {
			return fail("reading message %d: %v", c.id, err)
		}
		fmt.Fprintf(stdout, "%s\n%s\n\n%s\n", m.ReceivedAt.Format(locale.DayMonthNameYear), m.Title, m.Body)
		return subcommands.ExitSuccess
	}

	var year, month *int
	if c.year != 0 {
		year = &c.year
	}
	if c.month != 0 {
		month = &c.month
	}
	messages, err := cl.Messages.Inbox(ctx, year, month)
	if err != nil {
		return fail("listing messages: %v", err)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tReceived\tTitle\t")
	for _, m := range messages {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", m.ID, m.ReceivedAt.Format(locale.DayMonthYear), m.Title)
	}
	tw.Flush()
	return subcommands.ExitSuccess
}

type linkedCmd struct {
	switchTo int
}

func (*linkedCmd) Name() string     { return "linked" }
func (*linkedCmd) Synopsis() string { return "list linked client accounts or switch between them" }
func (*linkedCmd) Usage() string {
	return `linked [-switch <client number>]
`
}

func (c *linkedCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.switchTo, "switch", 0, "Switch to this client number")
}

func (c *linkedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cl, err := session(ctx)
	if err != nil {
		return fail("%v", err)
	}

	if c.switchTo != 0 {
		ok, err := cl.LinkedAccounts.Switch(ctx, c.switchTo)
		if err != nil {
			return fail("switching to %d: %v", c.switchTo, err)
		}
		if !ok {
			return fail("client %d is not selected after switching", c.switchTo)
		}
		fmt.Fprintf(stdout, "Switched to client %d\n", c.switchTo)
		return subcommands.ExitSuccess
	}

	accounts, err := cl.LinkedAccounts.List(ctx)
	if err != nil {
		return fail("listing linked accounts: %v", err)
	}
	for _, a := range accounts {
		marker := " "
		if a.CurrentlySelected {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %d %s\n", marker, a.ClientNumber, a.Name)
	}
	return subcommands.ExitSuccess
}
