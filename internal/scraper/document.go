// Package scraper turns already-fetched HTML pages into typed records.
//
// Every exported function works on a parsed document only and never touches
// the network, so each one can be tested against a literal page.
//
// The shared shape is: find the target table (by id or class), walk the
// direct <tr> children of its <tbody> in order, and read a fixed set of cell
// positions per row, unwrapping the anchor/strong/span decoration each
// column is known to carry. A missing table or cell is reported as
// common.ErrUnrecognizedDocument because it means the layout changed.
package scraper

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/transport"
)

// Load parses an HTML page.
func Load(body []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// MustLoad is Load for literal pages in tests and examples.
func MustLoad(page string) *goquery.Document {
	doc, err := Load([]byte(page))
	if err != nil {
		panic(err)
	}
	return doc
}

func missing(element, detail string) error {
	return &common.DocumentError{Element: element, Detail: detail}
}

// findTable returns the single table matching selector.
func findTable(doc *goquery.Document, selector string) (*goquery.Selection, error) {
	tables := doc.Find("table" + selector)
	if tables.Length() == 0 {
		return nil, missing("table"+selector, "not found")
	}
	return tables.First(), nil
}

// bodyRows returns the direct rows of the table's first tbody, in order.
func bodyRows(table *goquery.Selection) []*goquery.Selection {
	body := table.ChildrenFiltered("tbody").First()
	var rows []*goquery.Selection
	body.ChildrenFiltered("tr").Each(func(_ int, row *goquery.Selection) {
		rows = append(rows, row)
	})
	return rows
}

// cell returns the zero-based td of row.
func cell(row *goquery.Selection, index int, field string) (*goquery.Selection, error) {
	cells := row.ChildrenFiltered("td")
	if index >= cells.Length() {
		return nil, missing(field, fmt.Sprintf("row has %d cells, need cell %d", cells.Length(), index))
	}
	return cells.Eq(index), nil
}

// unwrap descends through the given child tags, one level per tag, and
// returns the innermost element. unwrap(td, "span", "span") reads
// <td><span><span>x</span></span></td>.
func unwrap(sel *goquery.Selection, field string, tags ...string) (*goquery.Selection, error) {
	for _, tag := range tags {
		next := sel.ChildrenFiltered(tag)
		if next.Length() == 0 {
			return nil, missing(field, fmt.Sprintf("no <%s> in cell", tag))
		}
		sel = next.First()
	}
	return sel, nil
}

// text reads the cleaned text of the element reached by unwrapping.
func text(row *goquery.Selection, index int, field string, tags ...string) (string, error) {
	c, err := cell(row, index, field)
	if err != nil {
		return "", err
	}
	inner, err := unwrap(c, field, tags...)
	if err != nil {
		return "", err
	}
	return locale.Clean(inner.Text()), nil
}

func currencyCell(row *goquery.Selection, index int, field string, tags ...string) (d decimal.Decimal, err error) {
	s, err := text(row, index, field, tags...)
	if err != nil {
		return d, err
	}
	v, err := locale.ParseCurrency(s)
	if err != nil {
		return d, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

func numberCell(row *goquery.Selection, index int, field string, tags ...string) (d decimal.Decimal, err error) {
	s, err := text(row, index, field, tags...)
	if err != nil {
		return d, err
	}
	v, err := locale.ParseNumber(s)
	if err != nil {
		return d, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

// linkSegment strips the service base URL from a link target and returns
// the path segment at index. Relative links are accepted too.
func linkSegment(href string, index int) (string, error) {
	rest := strings.TrimPrefix(href, transport.DefaultBaseURL)
	if u, err := url.Parse(rest); err == nil && (u.Scheme != "" || u.RawQuery != "") {
		rest = strings.TrimPrefix(u.Path, "/")
	}
	rest = strings.TrimPrefix(rest, "/")
	segments := strings.Split(rest, "/")
	if index >= len(segments) || segments[index] == "" {
		return "", fmt.Errorf("link %q has no path segment %d", href, index)
	}
	return segments[index], nil
}

// anchorHref returns the href of the cell's direct anchor.
func anchorHref(row *goquery.Selection, index int, field string) (string, error) {
	c, err := cell(row, index, field)
	if err != nil {
		return "", err
	}
	a, err := unwrap(c, field, "a")
	if err != nil {
		return "", err
	}
	href, ok := a.Attr("href")
	if !ok {
		return "", missing(field, "anchor without href")
	}
	return href, nil
}
