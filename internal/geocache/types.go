// Package geocache defines the in-memory model of a found geocache as read
// from a GPX export: the cache itself, its location, its attributes and the
// log that recorded the find.
package geocache

import (
	"sort"
	"time"
)

// EarliestDate is stored for dates that are missing or cannot be parsed.
var EarliestDate = time.Time{}

// Attribute is one cache attribute, e.g. "Dogs allowed".
type Attribute struct {
	ID   int
	Name string
	// Inverted means the attribute does NOT apply ("No dogs").
	Inverted bool
}

// Record is one waypoint of the export together with its found log.
// Records are keyed by Code.
type Record struct {
	// Code is the GC code, e.g. GC12345
	Code string
	// CacheID is the numeric id of the cache element
	CacheID int64
	Name    string
	URL     string

	Location Location

	// Type is the cache type, e.g. "Traditional Cache"
	Type string
	// Size is the container size, e.g. "Micro"
	Size       string
	Difficulty float64
	Terrain    float64
	Country    string
	State      string

	// PlacedBy is the display name shown on the listing
	PlacedBy  string
	OwnerID   string
	OwnerName string

	Placed      time.Time
	Archived    bool
	Available   bool
	Attributes  []Attribute
	Description string

	// FoundDate, FoundLog, LogType and LogID describe the qualifying found log
	FoundDate time.Time
	FoundLog  string
	LogType   string
	LogID     int64

	// FoundIndex is the 1-based position in found order. Zero until
	// AssignFoundOrder has run.
	FoundIndex int
}

// Owner returns the owner display name, falling back to PlacedBy for
// exports without an owner element.
func (r *Record) Owner() string {
	if r.OwnerName != "" {
		return r.OwnerName
	}
	return r.PlacedBy
}

// HasFoundLog reports whether a qualifying log was attached to the record.
func (r *Record) HasFoundLog() bool {
	return r.LogType != ""
}

// FoundBefore orders records by found date, then log id.
func FoundBefore(a, b *Record) bool {
	if !a.FoundDate.Equal(b.FoundDate) {
		return a.FoundDate.Before(b.FoundDate)
	}
	return a.LogID < b.LogID
}

// AssignFoundOrder numbers the records 1..N by (FoundDate, LogID). The
// slice itself keeps its order.
func AssignFoundOrder(records []*Record) {
	ordered := make([]*Record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return FoundBefore(ordered[i], ordered[j])
	})

	for i, r := range ordered {
		r.FoundIndex = i + 1
	}
}

// SortedByFoundOrder returns a copy of records in found order.
func SortedByFoundOrder(records []*Record) []*Record {
	ordered := make([]*Record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].FoundIndex != ordered[j].FoundIndex {
			return ordered[i].FoundIndex < ordered[j].FoundIndex
		}
		return FoundBefore(ordered[i], ordered[j])
	})
	return ordered
}

// SortedByPlacedDate returns a copy of records ordered by placement date.
// Equal dates keep input order.
func SortedByPlacedDate(records []*Record) []*Record {
	ordered := make([]*Record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Placed.Before(ordered[j].Placed)
	})
	return ordered
}
