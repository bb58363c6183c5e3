package analyzer

import (
	"errors"
	"testing"

	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
	"github.com/olegiv/gclogs-analyzer-go/internal/geocache"
	"github.com/olegiv/gclogs-analyzer-go/internal/report"
)

// mockSource implements RecordSource for testing
type mockSource struct {
	records []*geocache.Record
}

func (m *mockSource) Read(sourcePath string) ([]*geocache.Record, error) {
	return m.records, nil
}

func (m *mockSource) GetSourceInfo(sourcePath string) (map[string]interface{}, error) {
	return map[string]interface{}{"size_bytes": int64(100)}, nil
}

var _ RecordSource = (*mockSource)(nil)

func countingStep(anchor string, calls *[]string) *Step {
	return &Step{
		Anchor: anchor,
		Title:  "Title " + anchor,
		Add: func(doc *report.Document, records []*geocache.Record) (int, error) {
			*calls = append(*calls, anchor)
			return len(records), report.AddSection(doc, records, "Title "+anchor, anchor, ShortInfoColumns())
		},
	}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if r.Len() != 0 {
		t.Errorf("Expected empty registry, got %d steps", r.Len())
	}
}

func TestRegistry_Register(t *testing.T) {
	var calls []string
	noop := func(doc *report.Document, records []*geocache.Record) (int, error) { return 0, nil }

	tests := []struct {
		name    string
		step    *Step
		wantErr bool
	}{
		{"valid step", countingStep("A", &calls), false},
		{"nil step", nil, true},
		{"empty anchor", &Step{Title: "x", Add: noop}, true},
		{"nil add", &Step{Anchor: "B"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Register(tt.step)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_DuplicateAnchor(t *testing.T) {
	var calls []string
	r := NewRegistry()

	if err := r.Register(countingStep("A", &calls)); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	err := r.Register(countingStep("A", &calls))
	if !errors.Is(err, internalerrors.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Expected 1 step, got %d", r.Len())
	}
}

func TestRegistry_GetAndHas(t *testing.T) {
	var calls []string
	r := NewRegistry()
	_ = r.Register(countingStep("A", &calls))

	step, ok := r.Get("A")
	if !ok || step.Anchor != "A" {
		t.Errorf("Get(A) = %v, %v", step, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
	if !r.Has("A") || r.Has("missing") {
		t.Error("Has returned wrong result")
	}
	if r.MustGet("A") != step {
		t.Error("MustGet returned a different step")
	}
}

func TestRegistry_MustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet did not panic for unknown anchor")
		}
	}()
	NewRegistry().MustGet("missing")
}

func TestRegistry_RunOrder(t *testing.T) {
	var calls []string
	r := NewRegistry()
	for _, a := range []string{"C", "A", "B"} {
		if err := r.Register(countingStep(a, &calls)); err != nil {
			t.Fatalf("Register(%s) returned error: %v", a, err)
		}
	}

	list := r.List()
	if len(list) != 3 || list[0] != "C" || list[1] != "A" || list[2] != "B" {
		t.Errorf("List() = %v, want [C A B]", list)
	}

	doc := report.NewDocument()
	var reported []string
	records := []*geocache.Record{{Code: "GC1"}, {Code: "GC2"}}

	err := r.Run(records, doc, func(step *Step, rows int) {
		reported = append(reported, step.Anchor)
		if rows != 2 {
			t.Errorf("Step %s reported %d rows, want 2", step.Anchor, rows)
		}
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for i, want := range []string{"C", "A", "B"} {
		if calls[i] != want || reported[i] != want || doc.Anchors()[i] != want {
			t.Errorf("Position %d: calls=%v reported=%v anchors=%v", i, calls, reported, doc.Anchors())
		}
	}
}

func TestRegistry_RunStopsOnError(t *testing.T) {
	var calls []string
	r := NewRegistry()
	_ = r.Register(countingStep("A", &calls))
	_ = r.Register(countingStep("B", &calls))
	_ = r.Register(countingStep("C", &calls))

	// a section already using anchor B makes step B fail
	doc := report.NewDocument()
	if err := report.AddSection(doc, []int{}, "taken", "B", nil); err != nil {
		t.Fatalf("AddSection returned error: %v", err)
	}

	err := r.Run(nil, doc, nil)
	if !errors.Is(err, internalerrors.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
	if len(calls) != 2 {
		t.Errorf("Expected run to stop after B, calls = %v", calls)
	}
}

func TestRegistry_RunSkipsCallbackWithoutSection(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&Step{
		Anchor: "Nothing",
		Add: func(doc *report.Document, records []*geocache.Record) (int, error) {
			return 0, nil
		},
	})

	called := false
	if err := r.Run(nil, report.NewDocument(), func(*Step, int) { called = true }); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if called {
		t.Error("Callback called for a step that added no section")
	}
}
