package geocache

import (
	"testing"
	"time"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func TestAssignFoundOrder(t *testing.T) {
	records := []*Record{
		{Code: "GC3", FoundDate: day(2021, 3, 10), LogID: 30},
		{Code: "GC1", FoundDate: day(2020, 1, 1), LogID: 50},
		{Code: "GC2", FoundDate: day(2020, 1, 1), LogID: 10},
		{Code: "GC4", FoundDate: EarliestDate, LogID: 99},
	}

	AssignFoundOrder(records)

	want := map[string]int{"GC4": 1, "GC2": 2, "GC1": 3, "GC3": 4}
	for _, r := range records {
		if r.FoundIndex != want[r.Code] {
			t.Errorf("%s FoundIndex = %d, want %d", r.Code, r.FoundIndex, want[r.Code])
		}
	}

	// input order is untouched
	if records[0].Code != "GC3" || records[3].Code != "GC4" {
		t.Error("AssignFoundOrder must not reorder its input")
	}
}

func TestAssignFoundOrder_Contiguous(t *testing.T) {
	var records []*Record
	for i := 0; i < 250; i++ {
		records = append(records, &Record{
			FoundDate: day(2020, time.Month(i%12+1), i%28+1),
			LogID:     int64(1000 - i),
		})
	}

	AssignFoundOrder(records)

	seen := make(map[int]bool)
	for _, r := range records {
		if r.FoundIndex < 1 || r.FoundIndex > len(records) {
			t.Fatalf("FoundIndex %d out of range", r.FoundIndex)
		}
		if seen[r.FoundIndex] {
			t.Fatalf("FoundIndex %d assigned twice", r.FoundIndex)
		}
		seen[r.FoundIndex] = true
	}

	ordered := SortedByFoundOrder(records)
	for i := 1; i < len(ordered); i++ {
		if FoundBefore(ordered[i], ordered[i-1]) {
			t.Fatalf("record %d found before record %d", i, i-1)
		}
		if ordered[i].FoundIndex != ordered[i-1].FoundIndex+1 {
			t.Fatalf("found order not contiguous at %d", i)
		}
	}
}

func TestSortedByPlacedDate(t *testing.T) {
	records := []*Record{
		{Code: "B", Placed: day(2010, 5, 1)},
		{Code: "A", Placed: day(2005, 1, 1)},
		{Code: "C", Placed: day(2010, 5, 1)},
	}

	got := SortedByPlacedDate(records)
	order := got[0].Code + got[1].Code + got[2].Code
	if order != "ABC" {
		t.Errorf("order = %s, want ABC", order)
	}
	if records[0].Code != "B" {
		t.Error("SortedByPlacedDate must not modify its input")
	}
}

func TestRecord_Owner(t *testing.T) {
	r := &Record{PlacedBy: "Team Listing"}
	if r.Owner() != "Team Listing" {
		t.Errorf("Owner() = %q, want fallback to PlacedBy", r.Owner())
	}
	r.OwnerName = "owner42"
	if r.Owner() != "owner42" {
		t.Errorf("Owner() = %q, want owner42", r.Owner())
	}
}

func TestRecord_HasFoundLog(t *testing.T) {
	r := &Record{}
	if r.HasFoundLog() {
		t.Error("empty record should not have a found log")
	}
	r.LogType = "Found it"
	if !r.HasFoundLog() {
		t.Error("record with log type should have a found log")
	}
}
