// Package auth drives the two-stage web login.
//
// Stage one posts the username and date of birth. Stage two posts the
// password plus the three digits of the secure number that the page asks
// for. Each stage echoes back the page's anti-forgery token and is checked
// by the path the submission finally lands on.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/scraper"
	"github.com/insightdelivered/hl-client/internal/transport"
)

// State is the progress of a login attempt.
type State int

const (
	NotStarted State = iota
	Stage1Complete
	Authenticated
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Stage1Complete:
		return "stage1-complete"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Credentials are the secrets asked for across both stages.
type Credentials struct {
	Username     string
	Password     string
	DateOfBirth  time.Time
	SecureNumber string
}

// Validate checks the credentials without contacting the site.
func (c Credentials) Validate() error {
	switch {
	case strings.TrimSpace(c.Username) == "":
		return common.InvalidArgument("username", "must not be empty")
	case c.Password == "":
		return common.InvalidArgument("password", "must not be empty")
	case c.DateOfBirth.IsZero():
		return common.InvalidArgument("date of birth", "must be set")
	case c.SecureNumber == "":
		return common.InvalidArgument("secure number", "must not be empty")
	}
	if !allDigits(c.SecureNumber) {
		return common.InvalidArgument("secure number", "must contain digits only")
	}
	return nil
}

// Authenticator owns the authenticated flag of one session. The cookies
// themselves live in the Transport. Not safe for concurrent use.
type Authenticator struct {
	transport transport.Transport
	logger    *common.Logger
	state     State
	session   string
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

// NewAuthenticator creates an Authenticator over t.
func NewAuthenticator(t transport.Transport, opts ...Option) *Authenticator {
	a := &Authenticator{
		transport: t,
		logger:    common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State reports how far the last attempt got.
func (a *Authenticator) State() State {
	return a.state
}

// IsAuthenticated reports whether the last attempt completed both stages.
func (a *Authenticator) IsAuthenticated() bool {
	return a.state == Authenticated
}

// SessionID returns the id used to tag the log lines of the last attempt.
func (a *Authenticator) SessionID() string {
	return a.session
}

// Authenticate runs both stages from the start, even when the session is
// already authenticated. Invalid credentials or an already cancelled context
// are rejected without touching the current state. A cancellation during the
// run leaves the state where it was; any other failure moves it to Failed.
func (a *Authenticator) Authenticate(ctx context.Context, creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.state = NotStarted
	a.session = uuid.NewString()
	log := a.logger.WithSession(a.session)

	stages := []struct {
		stage Stage
		next  State
	}{
		{StageOne(creds.Username, creds.DateOfBirth), Stage1Complete},
		{StageTwo(creds.Password, creds.SecureNumber), Authenticated},
	}

	for _, s := range stages {
		if err := a.run(ctx, s.stage, log); err != nil {
			if !isCancellation(err) {
				a.state = Failed
				log.Warn().Err(err).Int("stage", s.stage.Number).Msg("login stage failed")
			}
			return err
		}
		a.state = s.next
	}

	log.Info().Msg("authenticated")
	return nil
}

// run loads the stage page, builds the answer, submits it and checks where
// the submission landed.
func (a *Authenticator) run(ctx context.Context, s Stage, log *common.Logger) error {
	log.Debug().Int("stage", s.Number).Str("path", s.Path).Msg("login stage started")

	if err := ctx.Err(); err != nil {
		return err
	}
	resp, err := a.transport.Fetch(ctx, s.Path)
	if err != nil {
		return fmt.Errorf("stage %d: failed to load login page: %w", s.Number, err)
	}

	page, err := scraper.Load(resp.Body)
	if err != nil {
		return fmt.Errorf("stage %d: %w", s.Number, err)
	}

	fields, err := s.Build(page)
	if err != nil {
		return fmt.Errorf("stage %d: %w", s.Number, err)
	}
	token, err := VerificationToken(page, s.Number)
	if err != nil {
		return err
	}
	fields.Set(TokenField, token)

	if err := ctx.Err(); err != nil {
		return err
	}
	resp, err = a.transport.Submit(ctx, s.Path, fields)
	if err != nil {
		return fmt.Errorf("stage %d: failed to submit login page: %w", s.Number, err)
	}

	observed := transport.NormalizePath(resp.FinalPath)
	if observed != s.ExpectedPath {
		return &common.AuthenticationStageError{Stage: s.Number, Expected: s.ExpectedPath, Observed: observed}
	}

	log.Debug().Int("stage", s.Number).Msg("login stage complete")
	return nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
