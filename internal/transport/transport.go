// Package transport performs the client's HTTP requests and keeps the
// session cookies between them.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the root of the online service.
const DefaultBaseURL = "https://online.hl.co.uk/"

// Response is the outcome of a request after redirects were followed.
type Response struct {
	// FinalPath is the path of the last request in the redirect chain,
	// always with a leading slash.
	FinalPath  string
	StatusCode int
	Body       []byte
}

// Transport is what the rest of the client needs from the network. Paths are
// relative to the service root. Implementations keep the cookie state, so a
// Transport must not be shared between concurrent sessions.
type Transport interface {
	Fetch(ctx context.Context, path string) (*Response, error)
	Submit(ctx context.Context, path string, fields url.Values) (*Response, error)
}

// StatusError is returned for a non-2xx final response.
type StatusError struct {
	StatusCode int
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.Path, e.StatusCode)
}

// NormalizePath gives p a single leading slash and no trailing slash.
func NormalizePath(p string) string {
	p = "/" + strings.Trim(p, "/")
	return p
}
