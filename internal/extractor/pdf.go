// Package extractor recovers positioned text runs from PDF content streams.
//
// Each run is bracketed by a graphics state save and restore, positioned
// with a single Td and shown with a single Tj. Only that pattern is
// recognised; layout-free text extraction is out of scope.
package extractor

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/hl-client/internal/common"
)

// Boilerplate lists the contract note positions whose text changes between
// notes without carrying any field.
var Boilerplate = []Coord{
	At(249.45, 593.86),
	At(347.81, 435.83),
}

// Extractor turns PDF bytes into tokens.
type Extractor struct {
	ignore map[Coord]bool
	logger *common.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithIgnored replaces the set of positions whose tokens are dropped.
func WithIgnored(coords ...Coord) Option {
	return func(e *Extractor) {
		e.ignore = make(map[Coord]bool, len(coords))
		for _, c := range coords {
			e.ignore[c] = true
		}
	}
}

// New creates an Extractor that drops the contract note Boilerplate.
func New(opts ...Option) *Extractor {
	e := &Extractor{logger: common.NewSilentLogger()}
	WithIgnored(Boilerplate...)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFile reads a PDF file and returns its tokens.
func (e *Extractor) ExtractFile(path string) ([]Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return e.Extract(data)
}

// Extract returns the tokens of every page in content order, minus the
// ignored positions. The PDF is read with the structured reader first; if
// that fails or finds nothing, the raw streams are scanned instead.
func (e *Extractor) Extract(data []byte) ([]Token, error) {
	tokens, libErr := extractWithLibrary(data)
	if libErr != nil || len(tokens) == 0 {
		e.logger.Debug().AnErr("library_error", libErr).Msg("falling back to raw stream scan")
		tokens = extractRaw(data)
	}
	if len(tokens) == 0 {
		if libErr != nil {
			return nil, &common.DocumentError{Element: "pdf", Detail: libErr.Error()}
		}
		return nil, &common.DocumentError{Element: "pdf", Detail: "no positioned text found"}
	}

	kept := tokens[:0]
	for _, t := range tokens {
		if e.ignore[t.Coord()] {
			e.logger.Debug().Stringer("token", t).Msg("ignored boilerplate token")
			continue
		}
		kept = append(kept, t)
	}
	return kept, nil
}

// extractWithLibrary walks each page's content streams with the PDF reader.
func extractWithLibrary(data []byte) (tokens []Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	c := &cursor{emit: func(t Token) { tokens = append(tokens, t) }}
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, strm := range contentStreams(page.V.Key("Contents")) {
			c.reset()
			interpret(strm, c)
		}
	}
	return tokens, nil
}

// contentStreams flattens a page's Contents entry, which is either one
// stream or an array of them.
func contentStreams(v pdf.Value) []pdf.Value {
	switch v.Kind() {
	case pdf.Stream:
		return []pdf.Value{v}
	case pdf.Array:
		streams := make([]pdf.Value, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			streams = append(streams, contentStreams(v.Index(i))...)
		}
		return streams
	}
	return nil
}

func interpret(strm pdf.Value, c *cursor) {
	pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]operand, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = toOperand(stk.Pop())
		}
		c.apply(op, args)
	})
}

func toOperand(v pdf.Value) operand {
	switch v.Kind() {
	case pdf.Real:
		return operand{kind: operandReal, num: v.Float64()}
	case pdf.Integer:
		return operand{kind: operandInteger, num: float64(v.Int64())}
	case pdf.String:
		return operand{kind: operandString, text: v.Text()}
	}
	return operand{}
}
