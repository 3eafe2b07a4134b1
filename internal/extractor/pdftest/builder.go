// Package pdftest writes small PDF files whose pages show text at given
// positions, for tests of the PDF readers.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
)

// Run is text shown at a position. X and Y are written exactly as given so
// tests control whether they read back as decimals or integers.
type Run struct {
	X, Y string
	Text string
}

// At is a Run at decimal coordinates formatted with two places.
func At(x, y float64, text string) Run {
	return Run{X: fmt.Sprintf("%.2f", x), Y: fmt.Sprintf("%.2f", y), Text: text}
}

// Content renders runs in the layout of a contract note: each run in its
// own saved graphics state and text object.
func Content(runs ...Run) string {
	var b strings.Builder
	b.WriteString("0.5 w\n")
	for _, r := range runs {
		fmt.Fprintf(&b, "q\n1 0 0 1 0 0 cm\nBT\n/F1 9 Tf\n%s %s Td\n(%s) Tj\nET\nQ\n", r.X, r.Y, Escape(r.Text))
	}
	return b.String()
}

// Escape quotes text for a literal string.
func Escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// Document collects pages. Each page holds one or more content streams.
type Document struct {
	pages    [][]string
	compress bool
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Page adds a page drawn by the given content streams, in order.
func (d *Document) Page(contents ...string) *Document {
	d.pages = append(d.pages, contents)
	return d
}

// Compressed stores content streams with FlateDecode.
func (d *Document) Compressed() *Document {
	d.compress = true
	return d
}

// Bytes renders the document with a valid cross-reference table.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string, stream []byte) int {
		offsets = append(offsets, buf.Len())
		n := len(offsets)
		fmt.Fprintf(&buf, "%d 0 obj\n%s", n, body)
		if stream != nil {
			buf.WriteString("\nstream\n")
			buf.Write(stream)
			buf.WriteString("\nendstream")
		}
		buf.WriteString("\nendobj\n")
		return n
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	// object numbers are fixed up front so the tree can refer forward
	pagesRef := 2
	next := 3
	type pageRefs struct {
		page     int
		contents []int
	}
	layout := make([]pageRefs, len(d.pages))
	for i, streams := range d.pages {
		layout[i].page = next
		next++
		for range streams {
			layout[i].contents = append(layout[i].contents, next)
			next++
		}
	}

	kids := make([]string, len(layout))
	for i, l := range layout {
		kids[i] = fmt.Sprintf("%d 0 R", l.page)
	}

	obj(fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesRef), nil)
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(layout)), nil)

	for i, l := range layout {
		refs := make([]string, len(l.contents))
		for j, c := range l.contents {
			refs[j] = fmt.Sprintf("%d 0 R", c)
		}
		contents := refs[0]
		if len(refs) > 1 {
			contents = "[" + strings.Join(refs, " ") + "]"
		}
		obj(fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 595.28 841.89] /Contents %s >>", pagesRef, contents), nil)

		for _, content := range d.pages[i] {
			data := []byte(content)
			dict := fmt.Sprintf("<< /Length %d >>", len(data))
			if d.compress {
				data = deflate(data)
				dict = fmt.Sprintf("<< /Length %d /Filter /FlateDecode >>", len(data))
			}
			obj(dict, data)
		}
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// Damaged renders the document without its cross-reference table and
// trailer, which structured readers reject.
func (d *Document) Damaged() []byte {
	full := d.Bytes()
	return full[:bytes.LastIndex(full, []byte("\nxref\n"))+1]
}

func deflate(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}
