// Package report renders homogeneous row sets as HTML table sections and
// assembles them into one page with a table of contents.
//
// A Document keeps its sections in insertion order; that order is the order
// of the table of contents and of the section bodies.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type section struct {
	anchor  string
	title   string
	content string
}

// Document accumulates rendered sections. The zero value is ready to use.
// A Document is not safe for concurrent use.
type Document struct {
	sections []section
	index    map[string]int
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{index: make(map[string]int)}
}

func (d *Document) add(anchor, title, content string) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	d.index[anchor] = len(d.sections)
	d.sections = append(d.sections, section{anchor: anchor, title: title, content: content})
}

// Has reports whether a section with this anchor was added.
func (d *Document) Has(anchor string) bool {
	_, ok := d.index[anchor]
	return ok
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.sections)
}

// Anchors returns the section anchors in document order.
func (d *Document) Anchors() []string {
	anchors := make([]string, len(d.sections))
	for i, s := range d.sections {
		anchors[i] = s.anchor
	}
	return anchors
}

// Title returns the headline of the section with the given anchor.
func (d *Document) Title(anchor string) (string, bool) {
	i, ok := d.index[anchor]
	if !ok {
		return "", false
	}
	return d.sections[i].title, true
}

// Render assembles the document. With wrapPage the output is a complete
// page, otherwise a fragment that can be embedded into another page.
// Render does not modify the document; repeated calls return the same text.
func (d *Document) Render(wrapPage bool) string {
	var sb strings.Builder

	if wrapPage {
		sb.WriteString(pageHeader)
		sb.WriteString("\n")
	}
	sb.WriteString(styleAndSectionHeader)
	sb.WriteString("\n")

	if len(d.sections) > 0 {
		sb.WriteString(string(Headline(mainAnchor, mainHeadline, 1)))
		sb.WriteString("\n")
		sb.WriteString(string(Headline(contentsAnchor, contentsTitle, 2)))
		sb.WriteString("\n<ul>\n")
		for _, s := range d.sections {
			sb.WriteString("<li>")
			sb.WriteString(string(Link(Text(s.title), "#"+s.anchor, false)))
			sb.WriteString("</li>\n")
		}
		sb.WriteString("</ul>\n")

		for _, s := range d.sections {
			sb.WriteString(s.content)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(styleAndSectionFooter)
	sb.WriteString("\n")
	if wrapPage {
		sb.WriteString(pageFooter)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteFile renders the document into path, creating the parent directory
// if needed.
func (d *Document) WriteFile(path string, wrapPage bool) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(d.Render(wrapPage)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
