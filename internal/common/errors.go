package common

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches exactly one of these
// through errors.Is, so callers can branch on the kind without unpacking
// the context.
var (
	ErrAuthenticationStageFailed = errors.New("authentication stage failed")
	ErrVerificationTokenMissing  = errors.New("verification token missing")
	ErrUnrecognizedDocument      = errors.New("unrecognized document structure")
	ErrEntityNotFound            = errors.New("entity not found")
	ErrUnknownTransactionType    = errors.New("unknown transaction type")
	ErrUnrecognizedPdfToken      = errors.New("unrecognized pdf token")
	ErrInvalidArgument           = errors.New("invalid argument")
)

// AuthenticationStageError reports a login stage whose submission did not
// land on the expected page.
type AuthenticationStageError struct {
	Stage    int
	Expected string
	Observed string
}

func (e *AuthenticationStageError) Error() string {
	return fmt.Sprintf("authentication stage %d failed: expected %q, landed on %q", e.Stage, e.Expected, e.Observed)
}

func (e *AuthenticationStageError) Is(target error) bool {
	return target == ErrAuthenticationStageFailed
}

// VerificationTokenError reports a login page without its anti-forgery field.
type VerificationTokenError struct {
	Stage int
	Field string
	Found int
}

func (e *VerificationTokenError) Error() string {
	return fmt.Sprintf("stage %d: expected exactly one %q input, found %d", e.Stage, e.Field, e.Found)
}

func (e *VerificationTokenError) Is(target error) bool {
	return target == ErrVerificationTokenMissing
}

// DocumentError reports an expected element missing from a page. It usually
// means the site layout changed.
type DocumentError struct {
	Element string
	Detail  string
}

func (e *DocumentError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unrecognized document structure: %s", e.Element)
	}
	return fmt.Sprintf("unrecognized document structure: %s: %s", e.Element, e.Detail)
}

func (e *DocumentError) Is(target error) bool {
	return target == ErrUnrecognizedDocument
}

// NotFoundError maps an upstream not-found status to a domain entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// TransactionTypeError reports a contract note whose buy/sell marker is not
// recognised.
type TransactionTypeError struct {
	Text string
}

func (e *TransactionTypeError) Error() string {
	return fmt.Sprintf("unknown transaction type: %q", e.Text)
}

func (e *TransactionTypeError) Is(target error) bool {
	return target == ErrUnknownTransactionType
}

// PdfTokenError reports a positioned text run that maps to no known field.
type PdfTokenError struct {
	X, Y float64
	Text string
}

func (e *PdfTokenError) Error() string {
	return fmt.Sprintf("failed to identify PDF item at coordinates (%g, %g) = %q", e.X, e.Y, e.Text)
}

func (e *PdfTokenError) Is(target error) bool {
	return target == ErrUnrecognizedPdfToken
}

// InvalidArgument wraps ErrInvalidArgument with the offending argument name.
func InvalidArgument(name, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, name, reason)
}
