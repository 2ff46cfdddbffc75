package checks

import (
	"fmt"
	"sync"
)

// Result pairs a check's metadata with the drafts one Execute call produced.
type Result struct {
	Metadata Metadata
	Drafts   []Draft
}

// Registry is the static check registry. Checks are registered explicitly at
// process init; there is no name-based dynamic loading. Registration order is
// preserved and determines result order.
type Registry struct {
	checks []Check
	index  map[string]struct{}
}

// NewRegistry returns an empty registry ready for check registration.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]struct{})}
}

// Register validates the check's metadata and adds it to the registry.
// An invalid descriptor or a duplicate CheckID is a fatal wiring error;
// the caller must abort startup rather than scan with unvalidated checks.
func (r *Registry) Register(c Check) error {
	meta := c.Metadata()
	if err := meta.Validate(); err != nil {
		return err
	}
	if _, exists := r.index[meta.CheckID]; exists {
		return fmt.Errorf("duplicate check ID %q", meta.CheckID)
	}
	r.checks = append(r.checks, c)
	r.index[meta.CheckID] = struct{}{}
	return nil
}

// RegisterAll registers every check in cs, stopping at the first error.
func (r *Registry) RegisterAll(cs []Check) error {
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// All returns the registered checks in registration order.
func (r *Registry) All() []Check {
	return r.checks
}

// ExecuteAll runs every registered check against in. Checks share no mutable
// state, so they run concurrently; results are merged back in registration
// order so downstream encoding and export order is stable run-to-run.
func (r *Registry) ExecuteAll(in Inputs) []Result {
	results := make([]Result, len(r.checks))

	var wg sync.WaitGroup
	for i, c := range r.checks {
		wg.Add(1)
		go func(i int, c Check) {
			defer wg.Done()
			results[i] = Result{
				Metadata: c.Metadata(),
				Drafts:   c.Execute(in),
			}
		}(i, c)
	}
	wg.Wait()

	return results
}
