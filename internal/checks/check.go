package checks

import "github.com/deepak-negi-devops/cloudvet/internal/models"

// Status is the outcome of evaluating one check against one resource.
type Status string

const (
	StatusPass   Status = "PASS"
	StatusFail   Status = "FAIL"
	StatusWarn   Status = "WARN"
	StatusInfo   Status = "INFO"
	StatusManual Status = "MANUAL"
)

// Draft is the raw result a check emits for one evaluated resource (or one
// account-wide condition). It is mutable only by the issuing check during a
// single Execute call; the finding encoder turns it into a canonical,
// immutable finding.
type Draft struct {
	Status          Status
	StatusExtended  string
	ResourceID      string
	ResourceARN     string
	ResourceDetails string
	ResourceTags    map[string]string
	Region          string
}

// Inputs carries the resource inventories a check evaluates. Inventories are
// owned by their collectors and published here read-only; checks must never
// mutate them. Either field may be nil depending on the scan target, and
// checks must tolerate that.
type Inputs struct {
	AWS     *models.AWSInventory
	Cluster *models.ClusterInventory
}

// Check is a single security rule: a validated static descriptor plus a pure
// decision function over collected resource data.
//
// Execute must be deterministic, perform no I/O, and be safe to call
// concurrently with other checks. It returns zero or more drafts; an empty
// result is valid (nothing to evaluate).
type Check interface {
	// Metadata returns the check's static descriptor.
	Metadata() Metadata

	// Execute evaluates the check against the provided inventories.
	Execute(in Inputs) []Draft
}
