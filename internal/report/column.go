package report

import (
	"strings"

	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
)

const opAddSection = "report.AddSection"

// Column projects one table column out of a row. Value receives the 1-based
// row number and the row itself and returns anything FormatValue accepts.
type Column[T any] struct {
	Header string
	Value  func(idx int, row T) any
}

// Col is shorthand for building a Column.
func Col[T any](header string, value func(idx int, row T) any) Column[T] {
	return Column[T]{Header: header, Value: value}
}

// AddSection renders rows as one table section and appends it to doc.
//
// The anchor addresses the section from the table of contents and must be
// unique within the document; a repeated anchor fails with ErrDuplicateKey
// and leaves doc unchanged.
func AddSection[T any](doc *Document, rows []T, title, anchor string, cols []Column[T]) error {
	if anchor == "" {
		return internalerrors.InvalidArgument(opAddSection, "empty anchor for section %q", title)
	}
	if doc.Has(anchor) {
		return internalerrors.DuplicateKey(opAddSection, anchor)
	}
	for i, col := range cols {
		if col.Value == nil {
			return internalerrors.InvalidArgument(opAddSection, "column %d (%q) of section %q has no value func", i, col.Header, anchor)
		}
	}

	var sb strings.Builder
	sb.WriteString(string(Headline(anchor, Text(title), 2)))
	sb.WriteString("\n")
	sb.WriteString(string(BackLink()))
	sb.WriteString("\n")

	headers := make([]any, len(cols))
	for i, col := range cols {
		headers[i] = col.Header
	}
	sb.WriteString(tableHeader(anchor, tableRow(headers, true)))
	sb.WriteString("\n")

	values := make([]any, len(cols))
	for i, row := range rows {
		for c, col := range cols {
			values[c] = col.Value(i+1, row)
		}
		sb.WriteString(tableRow(values, false))
		sb.WriteString("\n")
	}

	sb.WriteString(tableFooter)
	sb.WriteString("\n")

	doc.add(anchor, title, sb.String())
	return nil
}
