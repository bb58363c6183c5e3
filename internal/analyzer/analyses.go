package analyzer

import (
	"fmt"

	"github.com/olegiv/gclogs-analyzer-go/internal/geocache"
	"github.com/olegiv/gclogs-analyzer-go/internal/report"
)

// Section anchors in report order.
const (
	AnchorFoundsByCountry       = "FoundsByCountry"
	AnchorFoundsByState         = "FoundsByBundesland"
	AnchorFoundsByCacheType     = "FoundsByCacheType"
	AnchorFoundsByContainerSize = "FoundsByContainerSize"
	AnchorEveryNthFound         = "Every100thFound"
	AnchorFoundsByOwner         = "FoundsByOwner"
	AnchorCardinalExtremes      = "CardinalDirectionMaximums"
	AnchorByFoundDate           = "ByFoundDate"
	AnchorByPlacedDate          = "ByPlacedDate"
)

// Options tune the analyses.
type Options struct {
	// HomeCountry is the country whose states get their own section.
	HomeCountry string
	// AnniversaryInterval is N for the every-N-th-find section.
	AnniversaryInterval int
	// MinOwnerFounds is the smallest count listed in the owner section.
	MinOwnerFounds int
}

// DefaultOptions returns the options of the standard report.
func DefaultOptions() Options {
	return Options{
		HomeCountry:         "Germany",
		AnniversaryInterval: 100,
		MinOwnerFounds:      5,
	}
}

// DefaultRegistry registers the standard analyses in report order.
func DefaultRegistry(opts Options) (*Registry, error) {
	stateLabel := "State"
	stateTitle := fmt.Sprintf("Founds by State (%s)", opts.HomeCountry)
	if opts.HomeCountry == "Germany" {
		stateLabel = "Bundesland"
		stateTitle = "Founds by 'Bundesland'"
	}

	anniversaryTitle := fmt.Sprintf("Every %s Found", ordinal(opts.AnniversaryInterval))
	ownerTitle := fmt.Sprintf("Founds by Owner (%s and more founds)", countWord(opts.MinOwnerFounds))

	steps := []*Step{
		TableStep(AnchorFoundsByCountry, "Founds by Country", SimpleStatColumns("Country"),
			FoundsByCountry),
		TableStep(AnchorFoundsByState, stateTitle, SimpleStatColumns(stateLabel),
			func(records []*geocache.Record) []SimpleStat { return FoundsByState(records, opts.HomeCountry) }),
		TableStep(AnchorFoundsByCacheType, "Founds by Cache Type", SimpleStatColumns("Cache Type"),
			FoundsByCacheType),
		TableStep(AnchorFoundsByContainerSize, "Founds by Container Size", SimpleStatColumns("Size"),
			FoundsByContainerSize),
		TableStep(AnchorEveryNthFound, anniversaryTitle, ShortInfoColumns(),
			func(records []*geocache.Record) []*geocache.Record {
				return EveryNthFound(records, opts.AnniversaryInterval)
			}),
		TableStep(AnchorFoundsByOwner, ownerTitle, SimpleStatColumns("Owner"),
			func(records []*geocache.Record) []SimpleStat { return FoundsByOwner(records, opts.MinOwnerFounds) }),
		OptionalTableStep(AnchorCardinalExtremes, "Cardinal Direction Maximums", LogStatColumns(),
			CardinalExtremes),
		TableStep(AnchorByFoundDate, "Logs by Found Date", ShortInfoColumns(),
			ByFoundDate),
		TableStep(AnchorByPlacedDate, "Logs by Placed Date", FullInfoColumns(),
			ByPlacedDate),
	}

	registry := NewRegistry()
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// TableStep builds a step that always adds one table section, even without
// rows.
func TableStep[T any](anchor, title string, cols []report.Column[T], rows func([]*geocache.Record) []T) *Step {
	return &Step{
		Anchor: anchor,
		Title:  title,
		Add: func(doc *report.Document, records []*geocache.Record) (int, error) {
			data := rows(records)
			return len(data), report.AddSection(doc, data, title, anchor, cols)
		},
	}
}

// OptionalTableStep is TableStep that adds nothing when rows returns nil.
func OptionalTableStep[T any](anchor, title string, cols []report.Column[T], rows func([]*geocache.Record) []T) *Step {
	return &Step{
		Anchor: anchor,
		Title:  title,
		Add: func(doc *report.Document, records []*geocache.Record) (int, error) {
			data := rows(records)
			if data == nil {
				return 0, nil
			}
			return len(data), report.AddSection(doc, data, title, anchor, cols)
		},
	}
}

// Run executes the standard analyses against records and adds their sections
// to doc.
func Run(records []*geocache.Record, doc *report.Document, opts Options, onSection SectionFunc) error {
	registry, err := DefaultRegistry(opts)
	if err != nil {
		return err
	}
	return registry.Run(records, doc, onSection)
}

var countWords = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

func countWord(n int) string {
	if n >= 0 && n < len(countWords) {
		return countWords[n]
	}
	return fmt.Sprint(n)
}

// ordinal renders n with its English suffix: 1st, 2nd, 3rd, 11th, 22nd.
func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
