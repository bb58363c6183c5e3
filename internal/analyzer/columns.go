package analyzer

import (
	"fmt"

	"github.com/olegiv/gclogs-analyzer-go/internal/geocache"
	"github.com/olegiv/gclogs-analyzer-go/internal/groundspeak"
	"github.com/olegiv/gclogs-analyzer-go/internal/report"
)

// Column headers.
const (
	ColNr          = "Nr."
	ColFoundIdx    = "Found-Idx"
	ColFound       = "Found"
	ColFounds      = "Founds"
	ColPlaced      = "Placed"
	ColGcCode      = "GC-Code"
	ColName        = "Name"
	ColType        = "Type"
	ColSize        = "Size"
	ColDifficulty  = "Difficulty"
	ColTerrain     = "Terrain"
	ColAttributes  = "Attributes"
	ColCountry     = "Country"
	ColPlacedBy    = "Placed by"
	ColCoords      = "Coords"
	ColLogType     = "Log Type"
	ColLog         = "Log"
	ColDescription = "Description"
)

const textVisitLog = "Visit Log"

// Cache state icons: ballot box with X, with check, empty.
const (
	iconArchived  report.HTML = "&#x2612;"
	iconAvailable report.HTML = "&#x2611;"
	iconDisabled  report.HTML = "&#x2610;"
)

func row(_ int, r *geocache.Record) *geocache.Record { return r }

// recordCol lifts a record projection into a column over any row type that
// carries a record.
func recordCol[T any](header string, rec func(int, T) *geocache.Record, value func(*geocache.Record) any) report.Column[T] {
	return report.Col(header, func(idx int, r T) any { return value(rec(idx, r)) })
}

// recordColumns are the columns shared by the short and full record tables.
func recordColumns[T any](rec func(int, T) *geocache.Record, withState bool) []report.Column[T] {
	code := codeLink
	if withState {
		code = codeLinkWithState
	}

	cols := []report.Column[T]{
		recordCol(ColFoundIdx, rec, func(r *geocache.Record) any { return r.FoundIndex }),
		recordCol(ColFound, rec, func(r *geocache.Record) any { return r.FoundDate }),
		recordCol(ColPlaced, rec, func(r *geocache.Record) any { return r.Placed }),
		recordCol(ColGcCode, rec, func(r *geocache.Record) any { return code(r) }),
		recordCol(ColName, rec, func(r *geocache.Record) any { return r.Name }),
		recordCol(ColType, rec, func(r *geocache.Record) any { return r.Type }),
		recordCol(ColSize, rec, func(r *geocache.Record) any { return r.Size }),
		recordCol(ColDifficulty, rec, func(r *geocache.Record) any { return r.Difficulty }),
		recordCol(ColTerrain, rec, func(r *geocache.Record) any { return r.Terrain }),
	}
	if withState {
		cols = append(cols, recordCol(ColAttributes, rec, func(r *geocache.Record) any { return attributesSummary(r) }))
	}
	return append(cols,
		recordCol(ColCountry, rec, func(r *geocache.Record) any { return r.Country }),
		recordCol(ColPlacedBy, rec, func(r *geocache.Record) any { return ownerLink(r) }),
		recordCol(ColCoords, rec, func(r *geocache.Record) any { return coordsLink(r.Location) }),
		recordCol(ColLogType, rec, func(r *geocache.Record) any { return r.LogType }),
		recordCol(ColLog, rec, func(r *geocache.Record) any { return logLink(r) }),
	)
}

// ShortInfoColumns lists one record per row.
func ShortInfoColumns() []report.Column[*geocache.Record] {
	return recordColumns(row, false)
}

// FullInfoColumns is ShortInfoColumns with a leading row number, the cache
// state in front of the code and an attribute summary.
func FullInfoColumns() []report.Column[*geocache.Record] {
	nr := report.Col(ColNr, func(idx int, _ *geocache.Record) any { return idx })
	return append([]report.Column[*geocache.Record]{nr}, recordColumns(row, true)...)
}

// SimpleStatColumns numbers the groups of a count; label names the group
// column.
func SimpleStatColumns(label string) []report.Column[SimpleStat] {
	return []report.Column[SimpleStat]{
		report.Col(ColNr, func(idx int, _ SimpleStat) any { return idx }),
		report.Col(label, func(_ int, s SimpleStat) any { return s.Label }),
		report.Col(ColFounds, func(_ int, s SimpleStat) any { return s.Founds }),
	}
}

// LogStatColumns describes one labelled record per row.
func LogStatColumns() []report.Column[LogStat] {
	rec := func(_ int, s LogStat) *geocache.Record { return s.Record }
	return []report.Column[LogStat]{
		report.Col(ColDescription, func(_ int, s LogStat) any { return s.Label }),
		recordCol(ColGcCode, rec, func(r *geocache.Record) any { return codeLink(r) }),
		recordCol(ColFound, rec, func(r *geocache.Record) any { return r.FoundDate }),
		recordCol(ColName, rec, func(r *geocache.Record) any { return r.Name }),
		recordCol(ColType, rec, func(r *geocache.Record) any { return r.Type }),
		recordCol(ColCoords, rec, func(r *geocache.Record) any { return coordsLink(r.Location) }),
		recordCol(ColLog, rec, func(r *geocache.Record) any { return logLink(r) }),
	}
}

func codeLink(r *geocache.Record) report.HTML {
	return report.Link(report.Text(r.Code), groundspeak.CoordInfoURL(r.Code), true)
}

func codeLinkWithState(r *geocache.Record) report.HTML {
	return stateIcon(r) + "&nbsp;" + codeLink(r)
}

func stateIcon(r *geocache.Record) report.HTML {
	switch {
	case r.Archived:
		return iconArchived
	case r.Available:
		return iconAvailable
	default:
		return iconDisabled
	}
}

// ownerLink links the listing's placed-by name to the owner profile.
func ownerLink(r *geocache.Record) report.HTML {
	if r.OwnerID == "" {
		return report.Text(r.PlacedBy)
	}
	return report.Link(report.Text(r.PlacedBy), groundspeak.UserURL(r.OwnerID), true)
}

func coordsLink(loc geocache.Location) report.HTML {
	return report.Link(report.Text(loc.String()), groundspeak.GoogleMapsURL(loc.LatString(), loc.LonString()), true)
}

// logLink links to the found log. Records without a found log get an empty
// cell.
func logLink(r *geocache.Record) report.HTML {
	if !r.HasFoundLog() {
		return ""
	}
	url, err := groundspeak.LogURL(r.LogID)
	if err != nil {
		return textVisitLog
	}
	return report.Link(textVisitLog, url, true)
}

// attributesSummary shows the attribute count with the names in a tooltip.
func attributesSummary(r *geocache.Record) report.HTML {
	n := len(r.Attributes)
	if n == 0 {
		return "&nbsp; - &nbsp;"
	}

	label := fmt.Sprintf("%d Attribute", n)
	if n > 1 {
		label += "s"
	}

	lines := make([]string, n)
	for i, a := range r.Attributes {
		if a.Inverted {
			lines[i] = "Not: " + a.Name
		} else {
			lines[i] = a.Name
		}
	}
	return report.TextWithTooltip(report.Text(label), lines)
}
