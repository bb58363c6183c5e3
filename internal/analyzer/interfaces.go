// Package analyzer turns the parsed list of found caches into report
// sections. Every analysis is an independent Step that reads the whole,
// unmodified record list and adds at most one section to a report.Document.
package analyzer

import (
	"github.com/olegiv/gclogs-analyzer-go/internal/geocache"
	"github.com/olegiv/gclogs-analyzer-go/internal/report"
)

// RecordSource reads geocache records from a source.
// Implementations handle format-specific parsing and validation.
type RecordSource interface {
	// Read reads all records from the specified source path, in source
	// order and with found order assigned.
	Read(sourcePath string) ([]*geocache.Record, error)

	// GetSourceInfo returns metadata about the source.
	// Common keys: size_bytes, size_mb, modified, age_hours
	GetSourceInfo(sourcePath string) (map[string]interface{}, error)
}

// AddFunc adds the section of one analysis to doc and returns the number of
// table rows it rendered. It must not modify records.
type AddFunc func(doc *report.Document, records []*geocache.Record) (rows int, err error)

// Step is one registered analysis.
type Step struct {
	// Anchor addresses the section in the document; unique per registry.
	Anchor string
	// Title is the section headline.
	Title string
	Add   AddFunc
}
