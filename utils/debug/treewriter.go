// Package debug prepares human readable dumps of processed documents for
// debug reports.
package debug

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Element writes element subtree, one line per element with attributes
// ordered by name. Whitespace only character data is omitted.
func (tw TreeWriter) Element(depth int, el *etree.Element) {
	if el == nil {
		return
	}

	attrs := slices.Clone(el.Attr)
	slices.SortFunc(attrs, func(a, b etree.Attr) int {
		return strings.Compare(a.FullKey(), b.FullKey())
	})
	var sb strings.Builder
	sb.WriteString(el.FullTag())
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.FullKey())
		sb.WriteByte('=')
		sb.WriteString(strconv.Quote(a.Value))
	}
	tw.Line(depth, "%s", sb.String())

	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			tw.Element(depth+1, t)
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				tw.TextBlock(depth+1, "text", t.Data)
			}
		}
	}
}

// Markup returns element tree of markup or error when it could not be parsed.
func Markup(markup string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		return "", err
	}
	root := doc.Root()
	if root == nil {
		return "", fmt.Errorf("no root element")
	}
	tw := NewTreeWriter()
	tw.Element(0, root)
	return tw.String(), nil
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
