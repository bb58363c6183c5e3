package analyzer

import (
	"fmt"
	"sync"

	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
	"github.com/olegiv/gclogs-analyzer-go/internal/geocache"
	"github.com/olegiv/gclogs-analyzer-go/internal/report"
)

const opRegister = "analyzer.Register"

// Registry holds the analyses in registration order. The order is the order
// of the sections in the report.
type Registry struct {
	mu    sync.RWMutex
	steps []*Step
	index map[string]int
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Register appends a step. A second step with the same anchor is rejected
// with ErrDuplicateKey.
func (r *Registry) Register(step *Step) error {
	if step == nil {
		return fmt.Errorf("cannot register nil analysis step")
	}
	if step.Anchor == "" {
		return fmt.Errorf("analysis step anchor cannot be empty")
	}
	if step.Add == nil {
		return fmt.Errorf("analysis step %q has no add function", step.Anchor)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[step.Anchor]; exists {
		return internalerrors.DuplicateKey(opRegister, step.Anchor)
	}

	r.index[step.Anchor] = len(r.steps)
	r.steps = append(r.steps, step)
	return nil
}

// Get retrieves a step by anchor.
// Returns nil and false if no such step is registered.
func (r *Registry) Get(anchor string) (*Step, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[anchor]
	if !ok {
		return nil, false
	}
	return r.steps[i], true
}

// MustGet retrieves a step by anchor or panics if not found.
// Use this only when you're certain the step is registered.
func (r *Registry) MustGet(anchor string) *Step {
	step, ok := r.Get(anchor)
	if !ok {
		panic(fmt.Sprintf("analysis step %q not registered", anchor))
	}
	return step
}

// Has checks if a step with this anchor is registered.
func (r *Registry) Has(anchor string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[anchor]
	return ok
}

// List returns the registered anchors in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	anchors := make([]string, len(r.steps))
	for i, s := range r.steps {
		anchors[i] = s.Anchor
	}
	return anchors
}

// Len returns the number of registered steps.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.steps)
}

// SectionFunc is called after a step added its section.
type SectionFunc func(step *Step, rows int)

// Run executes every step in order against the same records. The first
// failing step stops the run; sections added before it stay in doc.
func (r *Registry) Run(records []*geocache.Record, doc *report.Document, onSection SectionFunc) error {
	r.mu.RLock()
	steps := make([]*Step, len(r.steps))
	copy(steps, r.steps)
	r.mu.RUnlock()

	for _, step := range steps {
		before := doc.Len()

		rows, err := step.Add(doc, records)
		if err != nil {
			return fmt.Errorf("analysis %q failed: %w", step.Anchor, err)
		}

		if onSection != nil && doc.Len() > before {
			onSection(step, rows)
		}
	}
	return nil
}
