package analyzer

import (
	"sort"

	"github.com/olegiv/gclogs-analyzer-go/internal/geocache"
)

// SimpleStat is one row of a grouped count.
type SimpleStat struct {
	Label  string
	Founds int
}

// LogStat pairs a label with one representative record.
type LogStat struct {
	Label  string
	Record *geocache.Record
}

// GroupCount groups records by key and counts them. Rows are ordered by
// count, descending; equal counts keep the order in which their key first
// appeared. The result is never nil.
func GroupCount(records []*geocache.Record, key func(*geocache.Record) string) []SimpleStat {
	stats := make([]SimpleStat, 0)
	index := make(map[string]int)

	for _, r := range records {
		k := key(r)
		if i, ok := index[k]; ok {
			stats[i].Founds++
			continue
		}
		index[k] = len(stats)
		stats = append(stats, SimpleStat{Label: k, Founds: 1})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Founds > stats[j].Founds
	})
	return stats
}

// FoundsByCountry counts finds per country.
func FoundsByCountry(records []*geocache.Record) []SimpleStat {
	return GroupCount(records, func(r *geocache.Record) string { return r.Country })
}

// FoundsByState counts finds per state, restricted to one country.
func FoundsByState(records []*geocache.Record, country string) []SimpleStat {
	inCountry := make([]*geocache.Record, 0, len(records))
	for _, r := range records {
		if r.Country == country {
			inCountry = append(inCountry, r)
		}
	}
	return GroupCount(inCountry, func(r *geocache.Record) string { return r.State })
}

// FoundsByCacheType counts finds per cache type.
func FoundsByCacheType(records []*geocache.Record) []SimpleStat {
	return GroupCount(records, func(r *geocache.Record) string { return r.Type })
}

// FoundsByContainerSize counts finds per container size.
func FoundsByContainerSize(records []*geocache.Record) []SimpleStat {
	return GroupCount(records, func(r *geocache.Record) string { return r.Size })
}

// FoundsByOwner counts finds per owner and keeps owners with at least
// minFounds finds.
func FoundsByOwner(records []*geocache.Record, minFounds int) []SimpleStat {
	all := GroupCount(records, func(r *geocache.Record) string { return r.Owner() })

	kept := make([]SimpleStat, 0, len(all))
	for _, s := range all {
		if s.Founds >= minFounds {
			kept = append(kept, s)
		}
	}
	return kept
}

// EveryNthFound returns the first find and then every n-th find (n, 2n, ...)
// in found order. n < 1 selects only the first find.
func EveryNthFound(records []*geocache.Record, n int) []*geocache.Record {
	ordered := ByFoundDate(records)

	selected := make([]*geocache.Record, 0, len(ordered)/max(n, 1)+1)
	for i, r := range ordered {
		if i == 0 || (n > 0 && (i+1)%n == 0) {
			selected = append(selected, r)
		}
	}
	return selected
}

// Labels of the cardinal extremes, in row order.
const (
	FarthestNorth = "Farthest North"
	FarthestSouth = "Farthest South"
	FarthestEast  = "Farthest East"
	FarthestWest  = "Farthest West"
)

// CardinalExtremes picks the northernmost, southernmost, easternmost and
// westernmost find. Only a strictly more extreme record replaces the current
// pick, so the first of several equal records wins. Returns nil for no
// records.
func CardinalExtremes(records []*geocache.Record) []LogStat {
	if len(records) == 0 {
		return nil
	}

	north, south, east, west := records[0], records[0], records[0], records[0]
	for _, r := range records[1:] {
		if r.Location.Lat > north.Location.Lat {
			north = r
		}
		if r.Location.Lat < south.Location.Lat {
			south = r
		}
		if r.Location.Lon > east.Location.Lon {
			east = r
		}
		if r.Location.Lon < west.Location.Lon {
			west = r
		}
	}

	return []LogStat{
		{Label: FarthestNorth, Record: north},
		{Label: FarthestSouth, Record: south},
		{Label: FarthestEast, Record: east},
		{Label: FarthestWest, Record: west},
	}
}

// ByFoundDate returns the records in found order.
func ByFoundDate(records []*geocache.Record) []*geocache.Record {
	return geocache.SortedByFoundOrder(records)
}

// ByPlacedDate returns the records ordered by placement date.
func ByPlacedDate(records []*geocache.Record) []*geocache.Record {
	return geocache.SortedByPlacedDate(records)
}
