// Package transporttest provides a scripted in-memory Transport.
package transporttest

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/insightdelivered/hl-client/internal/transport"
)

// Request is a call recorded by Fake.
type Request struct {
	Method string
	Path   string
	Fields url.Values
}

// Route is the canned answer for one method and path.
type Route struct {
	FinalPath  string // defaults to the requested path
	StatusCode int    // defaults to 200
	Body       string
	Err        error
	// Hook runs before the answer is built, e.g. to cancel a context.
	Hook func(fields url.Values)
}

// Fake answers requests from a route table keyed by "METHOD path".
type Fake struct {
	mu       sync.Mutex
	routes   map[string]Route
	Requests []Request
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{routes: make(map[string]Route)}
}

// OnFetch scripts the answer for a GET of path.
func (f *Fake) OnFetch(path string, r Route) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[http.MethodGet+" "+path] = r
	return f
}

// OnSubmit scripts the answer for a POST to path.
func (f *Fake) OnSubmit(path string, r Route) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[http.MethodPost+" "+path] = r
	return f
}

func (f *Fake) Fetch(ctx context.Context, path string) (*transport.Response, error) {
	return f.answer(ctx, http.MethodGet, path, nil)
}

func (f *Fake) Submit(ctx context.Context, path string, fields url.Values) (*transport.Response, error) {
	return f.answer(ctx, http.MethodPost, path, fields)
}

// Submitted returns the fields of the last POST to path, or nil.
func (f *Fake) Submitted(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.Requests) - 1; i >= 0; i-- {
		r := f.Requests[i]
		if r.Method == http.MethodPost && r.Path == path {
			return r.Fields
		}
	}
	return nil
}

// Count returns how many requests were made.
func (f *Fake) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

func (f *Fake) answer(ctx context.Context, method, path string, fields url.Values) (*transport.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.Requests = append(f.Requests, Request{Method: method, Path: path, Fields: fields})
	route, ok := f.routes[method+" "+path]
	f.mu.Unlock()

	if !ok {
		return nil, &transport.StatusError{StatusCode: http.StatusNotFound, Path: path}
	}
	if route.Hook != nil {
		route.Hook(fields)
	}
	if route.Err != nil {
		return nil, route.Err
	}

	status := route.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	if status < 200 || status > 299 {
		return nil, &transport.StatusError{StatusCode: status, Path: path}
	}

	final := route.FinalPath
	if final == "" {
		u, err := url.Parse(path)
		if err == nil {
			final = u.Path
		} else {
			final = path
		}
	}

	return &transport.Response{
		FinalPath:  transport.NormalizePath(final),
		StatusCode: status,
		Body:       []byte(route.Body),
	}, nil
}
