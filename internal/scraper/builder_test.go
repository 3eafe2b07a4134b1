package scraper

import (
	"fmt"
	"strings"
)

// tableBuilder renders a minimal page around one table.
type tableBuilder struct {
	id, class string
	body      []string
	footer    []string
}

func newTable() *tableBuilder { return &tableBuilder{} }

func (b *tableBuilder) withID(id string) *tableBuilder { b.id = id; return b }

func (b *tableBuilder) withClass(class string) *tableBuilder { b.class = class; return b }

func (b *tableBuilder) row(cells ...string) *tableBuilder {
	b.body = append(b.body, renderRow(cells))
	return b
}

func (b *tableBuilder) foot(cells ...string) *tableBuilder {
	b.footer = append(b.footer, renderRow(cells))
	return b
}

func renderRow(cells []string) string {
	var sb strings.Builder
	sb.WriteString("<tr> ")
	for _, c := range cells {
		fmt.Fprintf(&sb, "<td>%s</td> ", c)
	}
	sb.WriteString("</tr>\n")
	return sb.String()
}

func (b *tableBuilder) String() string {
	var sb strings.Builder
	sb.WriteString("<table")
	if b.id != "" {
		fmt.Fprintf(&sb, ` id="%s"`, b.id)
	}
	if b.class != "" {
		fmt.Fprintf(&sb, ` class="%s"`, b.class)
	}
	sb.WriteString(">\n<tbody>\n")
	sb.WriteString(strings.Join(b.body, ""))
	sb.WriteString("</tbody>\n")
	if len(b.footer) > 0 {
		sb.WriteString("<tfoot>\n")
		sb.WriteString(strings.Join(b.footer, ""))
		sb.WriteString("</tfoot>\n")
	}
	sb.WriteString("</table>")
	return sb.String()
}

func (b *tableBuilder) page() string {
	return "<html><head></head><body>\n" + b.String() + "\n</body></html>"
}

func link(href, text string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, text)
}

func span(text string) string { return "<span>" + text + "</span>" }

func strong(text string) string { return "<strong>" + text + "</strong>" }

func accountURL(id int) string {
	return fmt.Sprintf("https://online.hl.co.uk/my-accounts/account_summary/account/%d", id)
}
