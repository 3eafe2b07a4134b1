package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/insightdelivered/hl-client/internal/api"
	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/models"
	"github.com/insightdelivered/hl-client/internal/parser"
	"github.com/insightdelivered/hl-client/internal/writer"
)

type contractNoteCmd struct {
	csv    bool
	output string
}

func (*contractNoteCmd) Name() string     { return "contract-note" }
func (*contractNoteCmd) Synopsis() string { return "read trade details from contract note PDFs" }
func (*contractNoteCmd) Usage() string {
	return `contract-note [-csv] [-output <file.csv>] <note.pdf> [note2.pdf ...]

  Parses each contract note and prints a summary, or one CSV row per note.
  No login is needed.
`
}

func (c *contractNoteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", false, "Write CSV to stdout")
	f.StringVar(&c.output, "output", "", "Write CSV to this file")
}

func (c *contractNoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("at least one PDF is required")
	}
	_, logger, err := loadConfig()
	if err != nil {
		return fail("%v", err)
	}

	p := parser.New(parser.WithLogger(logger))
	var notes []*models.ContractNote
	failed := 0
	for _, path := range f.Args() {
		note, err := p.ParseFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed++
			continue
		}
		notes = append(notes, note)
	}

	w := &writer.CSVWriter{IncludeHeader: true}
	switch {
	case c.output != "":
		if err := w.WriteToFile(c.output, notes); err != nil {
			return fail("%v", err)
		}
		fmt.Fprintf(stdout, "Wrote %d contract notes to %s\n", len(notes), c.output)
	case c.csv:
		if err := w.WriteContractNotes(stdout, notes); err != nil {
			return fail("%v", err)
		}
	default:
		for _, n := range notes {
			printNote(n)
		}
	}

	if failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printNote(n *models.ContractNote) {
	fmt.Fprintf(stdout, "%s %s %s %s x %s\n", n.ContractNoteID, n.OrderTime.Format(locale.DayMonthYear+" "+locale.ClockTime),
		n.TransactionType, n.Quantity, n.UnitName)
	fmt.Fprintf(stdout, "  price %s (%s), fees %s, total %s\n",
		writer.Money(n.UnitPrice, n.UnitCurrency), writer.Sterling(n.UnitPriceGBP),
		writer.Sterling(n.Fees()), writer.Sterling(n.TotalGBPIncludingFees))
}

type serveCmd struct {
	listen string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the contract note API over HTTP" }
func (*serveCmd) Usage() string {
	return `serve [-listen <addr>]

  Starts the HTTP API:
    GET  /api/health
    POST /api/contract-notes   multipart field "file"; ?format=csv for CSV
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.listen, "listen", "", "Listen address (overrides api.listen in the config)")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fail("%v", err)
	}
	addr := cfg.Listen
	if c.listen != "" {
		addr = c.listen
	}

	app := api.NewApp(api.NewHandler(parser.New(parser.WithLogger(logger)), logger))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		app.Shutdown()
	}()

	logger.Info().Str("addr", addr).Msg("listening")
	if err := app.Listen(addr); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}
