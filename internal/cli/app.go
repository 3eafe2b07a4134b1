// Package cli implements the hl-client command line.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/insightdelivered/hl-client/internal/client"
	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/config"
	"github.com/insightdelivered/hl-client/internal/scraper"
	"github.com/insightdelivered/hl-client/internal/transport"
)

// Register adds the hl-client subcommands to c.
func Register(c *subcommands.Commander) {
	c.Register(&loginCheckCmd{}, "session")
	c.Register(&linkedCmd{}, "session")

	c.Register(&accountsCmd{}, "accounts")
	c.Register(&holdingsCmd{}, "accounts")
	c.Register(&cashCmd{}, "accounts")
	c.Register(&transactionsCmd{}, "accounts")

	c.Register(&messagesCmd{}, "messages")

	c.Register(&contractNoteCmd{}, "documents")
	c.Register(&serveCmd{}, "documents")
}

// a CLI run is short lived, so the shared settings live in globals

var configPath = flag.String("config", "", "Path to the TOML config file (default "+config.DefaultFile+" when present)")
var envFile = flag.String("env", ".env", "Path to a .env file holding the HL_* credentials")

var stdout io.Writer = os.Stdout

// dial opens the transport; tests replace it.
var dial = func(cfg *config.Config, logger *common.Logger) (transport.Transport, error) {
	return transport.NewHTTPTransport(cfg.BaseURL,
		transport.WithLogger(logger),
		transport.WithUserAgent(cfg.UserAgent),
		transport.WithTimeout(cfg.Timeout),
		transport.WithRateLimit(cfg.RateLimit),
	)
}

func loadConfig() (*config.Config, *common.Logger, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, common.NewLoggerWithOutput(cfg.LogLevel, os.Stderr), nil
}

// session logs in with the environment credentials and returns a ready
// client.
func session(ctx context.Context) (*client.Client, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	creds, err := config.Credentials(*envFile)
	if err != nil {
		return nil, err
	}
	t, err := dial(cfg, logger)
	if err != nil {
		return nil, err
	}

	c := client.New(t,
		client.WithLogger(logger),
		client.WithTransactionOptions(scraper.TransactionOptions{ValueFallback: cfg.ValueFallback}),
		client.WithMessageCacheTTL(cfg.MessageCacheTTL),
	)
	if err := c.Authenticate(ctx, creds); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return c, nil
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
