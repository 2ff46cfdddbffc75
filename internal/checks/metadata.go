package checks

import "fmt"

// Severity levels follow the metadata descriptor convention (lowercase).
// Exporters that need uppercase labels derive them at serialisation time.
const (
	SeverityCritical      = "critical"
	SeverityHigh          = "high"
	SeverityMedium        = "medium"
	SeverityLow           = "low"
	SeverityInformational = "informational"
)

// RemediationCode holds IaC and CLI remediation snippets for a check.
type RemediationCode struct {
	NativeIaC string
	Terraform string
	CLI       string
	Other     string
}

// RemediationRecommendation is the human-facing remediation guidance.
type RemediationRecommendation struct {
	Text string
	URL  string
}

// Remediation groups code snippets and the recommendation for a check.
type Remediation struct {
	Code           RemediationCode
	Recommendation RemediationRecommendation
}

// Tag is one key/value pair in a check's tag set. Tags are kept as an
// ordered slice, not a map, so their encoded form is stable across runs.
type Tag struct {
	Key   string
	Value string
}

// ComplianceAttribute is one attribute of a framework mapping. Values with
// more than one member (Group, Control) are encoded joined with "/".
type ComplianceAttribute struct {
	Key    string
	Values []string
}

// ComplianceEntry maps a check to one compliance framework. Framework order
// within a check is stable across runs; the encoder depends on it.
type ComplianceEntry struct {
	// Framework is the framework identifier, e.g. "CIS-AWS-1.5" or
	// "MITRE-ATTACK". It is also the ASFF associated-standards ID.
	Framework string

	// Requirements lists the requirement IDs this check satisfies or
	// violates within the framework, e.g. ["1.10", "1.11"].
	Requirements []string

	// Attributes carries ordered framework-specific attributes such as
	// Group, Control, or Subtechniques.
	Attributes []ComplianceAttribute
}

// Metadata is the static descriptor for one check. It is registered once at
// process start, validated, and shared read-only by every finding the check
// produces.
type Metadata struct {
	Provider           string
	CheckID            string
	CheckTitle         string
	CheckType          []string
	ServiceName        string
	SubServiceName     string
	ResourceIDTemplate string
	Severity           string
	ResourceType       string
	Description        string
	Risk               string
	RelatedURL         string
	Remediation        Remediation
	Categories         []string
	Tags               []Tag
	DependsOn          []string
	RelatedTo          []string
	Notes              string
	Compliance         []ComplianceEntry
}

// MetadataError reports an invalid or incomplete check descriptor.
// It is fatal: the process must not run checks with unvalidated metadata.
type MetadataError struct {
	CheckID string
	Field   string
}

func (e *MetadataError) Error() string {
	id := e.CheckID
	if id == "" {
		id = "<unknown>"
	}
	return fmt.Sprintf("check %s: metadata field %s is missing or invalid", id, e.Field)
}

// validSeverities is the closed set accepted by Validate.
var validSeverities = map[string]struct{}{
	SeverityCritical:      {},
	SeverityHigh:          {},
	SeverityMedium:        {},
	SeverityLow:           {},
	SeverityInformational: {},
}

// Validate checks that every required descriptor field is present and that
// the severity is one of the known levels. The first problem found is
// returned as a *MetadataError.
func (m Metadata) Validate() error {
	required := []struct {
		field string
		ok    bool
	}{
		{"Provider", m.Provider != ""},
		{"CheckID", m.CheckID != ""},
		{"CheckTitle", m.CheckTitle != ""},
		{"ServiceName", m.ServiceName != ""},
		{"Severity", m.Severity != ""},
		{"ResourceType", m.ResourceType != ""},
		{"Description", m.Description != ""},
		{"Risk", m.Risk != ""},
		{"Remediation.Recommendation.Text", m.Remediation.Recommendation.Text != ""},
	}
	for _, r := range required {
		if !r.ok {
			return &MetadataError{CheckID: m.CheckID, Field: r.field}
		}
	}
	if _, ok := validSeverities[m.Severity]; !ok {
		return &MetadataError{CheckID: m.CheckID, Field: "Severity"}
	}
	for _, c := range m.Compliance {
		if c.Framework == "" {
			return &MetadataError{CheckID: m.CheckID, Field: "Compliance.Framework"}
		}
		if len(c.Requirements) == 0 {
			return &MetadataError{CheckID: m.CheckID, Field: "Compliance.Requirements"}
		}
	}
	return nil
}
