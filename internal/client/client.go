// Package client ties the login, the page fetches and the page scrapers
// into one object per session.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"

	"github.com/insightdelivered/hl-client/internal/auth"
	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/scraper"
	"github.com/insightdelivered/hl-client/internal/transport"
)

const (
	DefaultMessageCacheTTL = time.Hour
	messageCacheCleanup    = 10 * time.Minute
)

// Client is one logical session. Requests are made one at a time; a Client
// must not be used from several goroutines at once.
type Client struct {
	transport transport.Transport
	auth      *auth.Authenticator
	logger    *common.Logger

	txOpts   scraper.TransactionOptions
	cacheTTL time.Duration
	messages *cache.Cache

	Accounts       *AccountService
	Messages       *MessageService
	LinkedAccounts *LinkedAccountService
}

// Option configures the client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTransactionOptions sets how transaction history pages are read.
func WithTransactionOptions(opts scraper.TransactionOptions) Option {
	return func(c *Client) {
		c.txOpts = opts
	}
}

// WithMessageCacheTTL sets how long fetched messages are kept. Zero disables
// the cache.
func WithMessageCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// New creates a client that talks through t.
func New(t transport.Transport, opts ...Option) *Client {
	c := &Client{
		transport: t,
		logger:    common.NewSilentLogger(),
		txOpts:    scraper.DefaultTransactionOptions(),
		cacheTTL:  DefaultMessageCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cacheTTL > 0 {
		c.messages = cache.New(c.cacheTTL, messageCacheCleanup)
	}
	c.auth = auth.NewAuthenticator(t, auth.WithLogger(c.logger))
	c.Accounts = &AccountService{client: c}
	c.Messages = &MessageService{client: c}
	c.LinkedAccounts = &LinkedAccountService{client: c}
	return c
}

// Authenticate logs the session in, repeating the whole login even when it
// is already authenticated. Cached messages are dropped first since the
// login may belong to someone else.
func (c *Client) Authenticate(ctx context.Context, creds auth.Credentials) error {
	c.forgetMessages()
	return c.auth.Authenticate(ctx, creds)
}

// IsAuthenticated reports whether the last login succeeded.
func (c *Client) IsAuthenticated() bool {
	return c.auth.IsAuthenticated()
}

// AuthState reports how far the last login got.
func (c *Client) AuthState() auth.State {
	return c.auth.State()
}

// forgetMessages empties the message cache. Cached messages belong to the
// client that was selected when they were read.
func (c *Client) forgetMessages() {
	if c.messages != nil {
		c.messages.Flush()
	}
}

// page fetches and parses path. A 404 is reported as entity id not found
// when entity is set.
func (c *Client) page(ctx context.Context, path, entity, id string) (*goquery.Document, error) {
	resp, err := c.transport.Fetch(ctx, path)
	if err != nil {
		var statusErr *transport.StatusError
		if entity != "" && errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, &common.NotFoundError{Entity: entity, ID: id}
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	c.logger.Debug().Str("path", path).Int("bytes", len(resp.Body)).Msg("page fetched")
	return scraper.Load(resp.Body)
}
