package analyzer

import (
	"time"

	"github.com/olegiv/gclogs-analyzer-go/internal/geocache"
)

// Summary is a short overview of a run, used for logging and notifications.
type Summary struct {
	Total            int
	FoundLogs        int
	FirstFound       time.Time
	LatestFound      time.Time
	Countries        int
	TopCountry       string
	TopCountryFounds int

	// Filled in by the caller once the report is built.
	RunID    string
	Sections int
}

// Summarize computes the overview of records. FoundLogs and the date range
// only consider records with a found log, undated finds are left out of the
// range.
func Summarize(records []*geocache.Record) Summary {
	s := Summary{Total: len(records)}

	for _, r := range records {
		if !r.HasFoundLog() {
			continue
		}
		s.FoundLogs++
		if r.FoundDate.Equal(geocache.EarliestDate) {
			continue
		}
		if s.FirstFound.IsZero() || r.FoundDate.Before(s.FirstFound) {
			s.FirstFound = r.FoundDate
		}
		if r.FoundDate.After(s.LatestFound) {
			s.LatestFound = r.FoundDate
		}
	}

	countries := FoundsByCountry(records)
	s.Countries = len(countries)
	if len(countries) > 0 {
		s.TopCountry = countries[0].Label
		s.TopCountryFounds = countries[0].Founds
	}

	return s
}
