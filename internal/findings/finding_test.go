package findings

import (
	"testing"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	"github.com/deepak-negi-devops/cloudvet/internal/scan"
)

func testMetadata() checks.Metadata {
	return checks.Metadata{
		Provider:     "aws",
		CheckID:      "s3_bucket_public_access",
		CheckTitle:   "Ensure S3 buckets are not publicly accessible",
		CheckType:    []string{"Software and Configuration Checks", "AWS Security Best Practices"},
		ServiceName:  "s3",
		Severity:     checks.SeverityCritical,
		ResourceType: "AwsS3Bucket",
		Description:  "Checks bucket policies for public access.",
		Risk:         "Public buckets expose their objects to the internet.",
		Remediation: checks.Remediation{
			Recommendation: checks.RemediationRecommendation{
				Text: "Enable the account-level public access block.",
				URL:  "https://docs.aws.amazon.com/AmazonS3/latest/userguide/access-control-block-public-access.html",
			},
		},
		Compliance: []checks.ComplianceEntry{
			{Framework: "CIS-AWS-1.5", Requirements: []string{"2.1.5"}},
		},
	}
}

// TestNew_FlattensMetadata verifies the draft/metadata/context join and the
// flat encodings on the resulting finding.
func TestNew_FlattensMetadata(t *testing.T) {
	sc := scan.NewContext("aws", "123456789012", "aws", "audit")
	sc.Organization = scan.Organization{Name: "acme", OrgID: "o-abc123"}

	f := New(checks.Draft{
		Status:         checks.StatusFail,
		StatusExtended: "S3 Bucket logs is publicly accessible.",
		ResourceID:     "logs",
		ResourceARN:    "arn:aws:s3:::logs",
		ResourceTags:   map[string]string{"env": "prod"},
		Region:         "us-east-1",
	}, testMetadata(), sc)

	if f.Status != "FAIL" {
		t.Errorf("Status = %q; want FAIL", f.Status)
	}
	if f.CheckType != "Software and Configuration Checks|AWS Security Best Practices" {
		t.Errorf("CheckType = %q; want |-joined list", f.CheckType)
	}
	if f.ResourceTags != "env:prod" {
		t.Errorf("ResourceTags = %q; want env:prod", f.ResourceTags)
	}
	if f.Compliance != "CIS-AWS-1.5:2.1.5" {
		t.Errorf("Compliance = %q; want CIS-AWS-1.5:2.1.5", f.Compliance)
	}
	if f.OrgName != "acme" || f.OrgID != "o-abc123" {
		t.Errorf("org = %s/%s; want acme/o-abc123", f.OrgName, f.OrgID)
	}
	if !f.AssessmentTime.Equal(sc.AssessmentTime) {
		t.Error("AssessmentTime not taken from the scan context")
	}
	if f.UID != UID("s3_bucket_public_access", "123456789012", "us-east-1", "logs") {
		t.Error("UID not derived from check/account/region/resource")
	}
}

// TestNew_SentinelResourceID verifies empty resource references normalise to
// the sentinel and the ARN falls back to the resource ID.
func TestNew_SentinelResourceID(t *testing.T) {
	sc := scan.NewContext("aws", "123456789012", "aws", "audit")

	f := New(checks.Draft{Status: checks.StatusPass, Region: "us-east-1"}, testMetadata(), sc)
	if f.ResourceID != SentinelResourceID {
		t.Errorf("ResourceID = %q; want %s", f.ResourceID, SentinelResourceID)
	}
	if f.ResourceARN != SentinelResourceID {
		t.Errorf("ResourceARN = %q; want sentinel fallback", f.ResourceARN)
	}

	// The UID must be derived after normalisation so reruns agree.
	if f.UID != UID("s3_bucket_public_access", "123456789012", "us-east-1", SentinelResourceID) {
		t.Error("UID not derived from the normalised resource ID")
	}
}

// TestNew_ARNWithoutID verifies an ARN-only draft keeps the ARN and gets the
// sentinel resource ID.
func TestNew_ARNWithoutID(t *testing.T) {
	sc := scan.NewContext("aws", "123456789012", "aws", "audit")

	f := New(checks.Draft{
		Status:      checks.StatusPass,
		ResourceARN: "arn:aws:s3:::logs",
		Region:      "us-east-1",
	}, testMetadata(), sc)

	if f.ResourceARN != "arn:aws:s3:::logs" {
		t.Errorf("ResourceARN = %q; want original ARN kept", f.ResourceARN)
	}
	if f.ResourceID != SentinelResourceID {
		t.Errorf("ResourceID = %q; want sentinel", f.ResourceID)
	}
}

// TestEncode_PreservesOrder verifies findings come out in result order, drafts
// in emission order.
func TestEncode_PreservesOrder(t *testing.T) {
	sc := scan.NewContext("aws", "123456789012", "aws", "audit")
	meta := testMetadata()

	results := []checks.Result{
		{Metadata: meta, Drafts: []checks.Draft{
			{Status: checks.StatusPass, ResourceID: "first", Region: "us-east-1"},
			{Status: checks.StatusFail, ResourceID: "second", Region: "us-east-1"},
		}},
		{Metadata: meta, Drafts: []checks.Draft{
			{Status: checks.StatusPass, ResourceID: "third", Region: "eu-west-1"},
		}},
	}

	fs := Encode(results, sc)
	if len(fs) != 3 {
		t.Fatalf("findings = %d; want 3", len(fs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if fs[i].ResourceID != want {
			t.Errorf("finding %d = %q; want %q", i, fs[i].ResourceID, want)
		}
	}
}
