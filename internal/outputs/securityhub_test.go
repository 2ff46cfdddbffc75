package outputs

import (
	"strings"
	"testing"
	"time"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	"github.com/deepak-negi-devops/cloudvet/internal/findings"
)

func asffInput() findings.Finding {
	return findings.Finding{
		UID:            "deadbeef",
		Status:         "FAIL",
		StatusExtended: "S3 Bucket logs is publicly accessible.",
		Provider:       "aws",
		AccountID:      "123456789012",
		Partition:      "aws",
		Region:         "us-east-1",
		CheckID:        "s3_bucket_public_access",
		CheckTitle:     "Ensure S3 buckets are not publicly accessible",
		CheckType:      "Software and Configuration Checks|AWS Security Best Practices",
		Severity:       checks.SeverityCritical,
		ResourceType:   "AwsS3Bucket",
		ResourceID:     "logs",
		ResourceARN:    "arn:aws:s3:::logs",
		AssessmentTime: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		ComplianceEntries: []checks.ComplianceEntry{
			{Framework: "CIS-AWS-1.5", Requirements: []string{"2.1.5"}},
		},
	}
}

// TestNewASFF_Mapping verifies the core field mapping.
func TestNewASFF_Mapping(t *testing.T) {
	rec := NewASFF(asffInput())

	if rec.SchemaVersion != "2018-10-08" {
		t.Errorf("SchemaVersion = %q", rec.SchemaVersion)
	}
	if rec.Severity.Label != "CRITICAL" {
		t.Errorf("Severity.Label = %q; want uppercased CRITICAL", rec.Severity.Label)
	}
	if rec.Compliance.Status != "FAILED" {
		t.Errorf("Compliance.Status = %q; want FAILED", rec.Compliance.Status)
	}
	if !strings.Contains(rec.ID, "deadbeef") {
		t.Errorf("ID = %q; want the finding UID embedded", rec.ID)
	}
	if len(rec.Types) != 2 {
		t.Errorf("Types = %v; want decoded 2-item list", rec.Types)
	}
	if rec.FirstObservedAt != "2026-08-01T10:30:00Z" || rec.FirstObservedAt != rec.UpdatedAt || rec.UpdatedAt != rec.CreatedAt {
		t.Errorf("timestamps = %s/%s/%s; want three identical formatted times",
			rec.FirstObservedAt, rec.UpdatedAt, rec.CreatedAt)
	}
	if len(rec.Resources) != 1 || rec.Resources[0].ID != "arn:aws:s3:::logs" {
		t.Errorf("Resources = %+v; want single ARN resource", rec.Resources)
	}
	if len(rec.Compliance.AssociatedStandards) != 1 ||
		rec.Compliance.AssociatedStandards[0].StandardsID != "CIS-AWS-1.5" {
		t.Errorf("AssociatedStandards = %+v", rec.Compliance.AssociatedStandards)
	}
}

// TestNewASFF_SummaryTruncation verifies the per-framework summary is
// truncated to 64 chars after building, not before.
func TestNewASFF_SummaryTruncation(t *testing.T) {
	f := asffInput()
	f.ComplianceEntries = []checks.ComplianceEntry{{
		Framework:    "CIS-AWS-1.5",
		Requirements: []string{"1.1", "1.2", "1.3", "1.4", "1.5", "1.6", "1.7", "1.8", "1.9", "1.10", "1.11", "1.12", "1.13", "1.14"},
	}}

	rec := NewASFF(f)
	if len(rec.Compliance.RelatedRequirements) != 1 {
		t.Fatalf("RelatedRequirements = %v; want 1 entry", rec.Compliance.RelatedRequirements)
	}
	got := rec.Compliance.RelatedRequirements[0]
	if len(got) != maxComplianceSummaryLen {
		t.Errorf("summary length = %d; want truncated to %d", len(got), maxComplianceSummaryLen)
	}
	if !strings.HasPrefix(got, "CIS-AWS-1.5 1.1 ") {
		t.Errorf("summary = %q; want framework-prefixed requirement list", got)
	}
}

// TestASFFStatus verifies the status suffix table.
func TestASFFStatus(t *testing.T) {
	cases := map[string]string{
		"PASS":   "PASSED",
		"FAIL":   "FAILED",
		"WARN":   "WARNING",
		"MANUAL": "NOT_AVAILABLE",
		"INFO":   "NOT_AVAILABLE",
	}
	for in, want := range cases {
		if got := asffStatus(in); got != want {
			t.Errorf("asffStatus(%q) = %q; want %q", in, got, want)
		}
	}
}
