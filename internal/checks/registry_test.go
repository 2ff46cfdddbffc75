package checks

import (
	"errors"
	"fmt"
	"testing"
)

// stubCheck is a minimal valid check whose drafts carry its ID, so execution
// order is observable.
type stubCheck struct {
	id string
}

func (c stubCheck) Metadata() Metadata {
	return Metadata{
		Provider:     "aws",
		CheckID:      c.id,
		CheckTitle:   "stub " + c.id,
		ServiceName:  "stub",
		Severity:     SeverityLow,
		ResourceType: "Stub",
		Description:  "stub check",
		Risk:         "none",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{Text: "nothing to do"},
		},
	}
}

func (c stubCheck) Execute(_ Inputs) []Draft {
	return []Draft{{Status: StatusPass, ResourceID: c.id, Region: "us-east-1"}}
}

// TestRegistry_ExecuteAllPreservesRegistrationOrder verifies results merge in
// registration order even though checks run concurrently.
func TestRegistry_ExecuteAllPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	var want []string
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("stub_check_%02d", i)
		want = append(want, id)
		if err := r.Register(stubCheck{id: id}); err != nil {
			t.Fatalf("Register(%s): %v", id, err)
		}
	}

	results := r.ExecuteAll(Inputs{})
	if len(results) != len(want) {
		t.Fatalf("results = %d; want %d", len(results), len(want))
	}
	for i, res := range results {
		if res.Metadata.CheckID != want[i] {
			t.Errorf("result %d = %s; want %s", i, res.Metadata.CheckID, want[i])
		}
		if len(res.Drafts) != 1 || res.Drafts[0].ResourceID != want[i] {
			t.Errorf("result %d drafts = %+v; want the check's own draft", i, res.Drafts)
		}
	}
}

// TestRegistry_RejectsDuplicateID verifies duplicate registration fails.
func TestRegistry_RejectsDuplicateID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubCheck{id: "dup"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(stubCheck{id: "dup"}); err == nil {
		t.Fatal("duplicate Register: want error, got nil")
	}
}

// TestRegistry_RejectsInvalidMetadata verifies descriptor validation runs at
// registration time and surfaces a typed error.
func TestRegistry_RejectsInvalidMetadata(t *testing.T) {
	r := NewRegistry()
	err := r.Register(invalidCheck{})
	var metaErr *MetadataError
	if !errors.As(err, &metaErr) {
		t.Fatalf("Register error = %v; want *MetadataError", err)
	}
	if metaErr.Field != "CheckTitle" {
		t.Errorf("Field = %q; want CheckTitle", metaErr.Field)
	}
}

// invalidCheck is missing its title.
type invalidCheck struct{}

func (invalidCheck) Metadata() Metadata {
	m := stubCheck{id: "invalid"}.Metadata()
	m.CheckTitle = ""
	return m
}

func (invalidCheck) Execute(_ Inputs) []Draft { return nil }

// TestRegistry_RegisterAllStopsAtFirstError verifies batch registration halts
// on the first failure.
func TestRegistry_RegisterAllStopsAtFirstError(t *testing.T) {
	r := NewRegistry()
	err := r.RegisterAll([]Check{
		stubCheck{id: "ok"},
		invalidCheck{},
		stubCheck{id: "never"},
	})
	if err == nil {
		t.Fatal("RegisterAll: want error, got nil")
	}
	if len(r.All()) != 1 {
		t.Errorf("registered checks = %d; want only the one before the failure", len(r.All()))
	}
}

// TestRegistry_ExecuteAllEmpty verifies an empty registry yields no results.
func TestRegistry_ExecuteAllEmpty(t *testing.T) {
	if results := NewRegistry().ExecuteAll(Inputs{}); len(results) != 0 {
		t.Errorf("results = %v; want none", results)
	}
}
