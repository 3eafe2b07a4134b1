package scraper

import (
	"fmt"
	stdhtml "html"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/models"
)

// message titles are rendered as markup; only their text is kept
var titlePolicy = bluemonday.StrictPolicy()

// ListMessages reads the secure messaging inbox table. Bodies are not part
// of the listing.
func ListMessages(doc *goquery.Document) ([]models.Message, error) {
	table, err := findTable(doc, ".inbox-table")
	if err != nil {
		return nil, err
	}

	rows := bodyRows(table)
	messages := make([]models.Message, 0, len(rows))
	for i, row := range rows {
		m, err := parseInboxRow(row)
		if err != nil {
			return nil, fmt.Errorf("message row %d: %w", i, err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func parseInboxRow(row *goquery.Selection) (models.Message, error) {
	var m models.Message

	href, err := anchorHref(row, 0, "message link")
	if err != nil {
		return m, err
	}
	id := path.Base(strings.TrimRight(href, "/"))
	if m.ID, err = strconv.Atoi(id); err != nil {
		return m, missing("message link", fmt.Sprintf("id %q is not a number", id))
	}

	if m.Title, err = text(row, 1, "message title", "a"); err != nil {
		return m, err
	}

	received, err := text(row, 2, "received date")
	if err != nil {
		return m, err
	}
	if m.ReceivedAt, err = locale.ParseExact(locale.DayMonthYear, received); err != nil {
		return m, fmt.Errorf("received date: %w", err)
	}
	return m, nil
}

// GetMessage reads a single message page. The body paragraphs are joined
// with newlines.
func GetMessage(doc *goquery.Document, id int) (models.Message, error) {
	m := models.Message{ID: id}

	window := doc.Find("div#smcWindow").First()
	if window.Length() == 0 {
		return m, missing("div#smcWindow", "not found")
	}
	header := window.ChildrenFiltered("h2").First()
	spans := header.ChildrenFiltered("span")
	if spans.Length() == 0 {
		return m, missing("div#smcWindow h2", "no <span> in header")
	}

	var err error
	if m.ReceivedAt, err = locale.ParseExact(locale.DayMonthNameYear, spans.First().Text()); err != nil {
		return m, fmt.Errorf("message date: %w", err)
	}

	title, err := spans.Last().Html()
	if err != nil {
		return m, fmt.Errorf("message title: %w", err)
	}
	m.Title = locale.Clean(stdhtml.UnescapeString(titlePolicy.Sanitize(title)))

	var paragraphs []string
	window.ChildrenFiltered("p").Each(func(_ int, p *goquery.Selection) {
		paragraphs = append(paragraphs, locale.Clean(p.Text()))
	})
	m.Body = strings.Join(paragraphs, "\n")
	return m, nil
}
