package findings

import (
	"strings"
	"testing"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
)

// TestUnrollList_RoundTrip verifies DecodeList inverts UnrollList.
func TestUnrollList_RoundTrip(t *testing.T) {
	cases := [][]string{
		{"a"},
		{"Software and Configuration Checks", "Industry and Regulatory Standards"},
	}
	for _, in := range cases {
		encoded := UnrollList(in)
		decoded := DecodeList(encoded)
		if len(decoded) != len(in) {
			t.Fatalf("DecodeList(%q) = %v; want %v", encoded, decoded, in)
		}
		for i := range in {
			if decoded[i] != in[i] {
				t.Errorf("DecodeList(%q)[%d] = %q; want %q", encoded, i, decoded[i], in[i])
			}
		}
	}
}

// TestUnrollList_Empty verifies the empty list encodes to "" and back to nil.
func TestUnrollList_Empty(t *testing.T) {
	if got := UnrollList(nil); got != "" {
		t.Errorf("UnrollList(nil) = %q; want empty", got)
	}
	if got := DecodeList(""); got != nil {
		t.Errorf("DecodeList(\"\") = %v; want nil", got)
	}
}

// TestUnrollTags verifies declared-order key:value encoding.
func TestUnrollTags(t *testing.T) {
	got := UnrollTags([]checks.Tag{
		{Key: "cis", Value: "1.5"},
		{Key: "aws", Value: "s3"},
	})
	if got != "cis:1.5|aws:s3" {
		t.Errorf("UnrollTags = %q; want cis:1.5|aws:s3", got)
	}
}

// TestUnrollTagMap verifies map tags are sorted by key for determinism.
func TestUnrollTagMap(t *testing.T) {
	got := UnrollTagMap(map[string]string{
		"team": "platform",
		"env":  "prod",
	})
	if got != "env:prod|team:platform" {
		t.Errorf("UnrollTagMap = %q; want env:prod|team:platform", got)
	}
	if UnrollTagMap(nil) != "" {
		t.Error("UnrollTagMap(nil) should be empty")
	}
}

// TestUnrollCompliance verifies the full framework/requirement/attribute
// encoding, including "/"-joined multi-member values.
func TestUnrollCompliance(t *testing.T) {
	entries := []checks.ComplianceEntry{
		{
			Framework:    "CIS-AWS-1.5",
			Requirements: []string{"2.1.5"},
			Attributes: []checks.ComplianceAttribute{
				{Key: "Group", Values: []string{"s3", "storage"}},
			},
		},
		{
			Framework:    "MITRE-ATTACK",
			Requirements: []string{"T1530"},
		},
	}
	got := UnrollCompliance(entries)
	want := "CIS-AWS-1.5:2.1.5,Group:s3/storage|MITRE-ATTACK:T1530"
	if got != want {
		t.Errorf("UnrollCompliance = %q; want %q", got, want)
	}
	if UnrollCompliance(nil) != "" {
		t.Error("UnrollCompliance(nil) should be empty")
	}
}

// TestUID_Stable verifies identical identities hash identically and that any
// component change alters the UID.
func TestUID_Stable(t *testing.T) {
	base := UID("s3_bucket_public_access", "123456789012", "us-east-1", "logs")
	if base != UID("s3_bucket_public_access", "123456789012", "us-east-1", "logs") {
		t.Error("identical inputs produced different UIDs")
	}
	if len(base) != 64 {
		t.Errorf("UID length = %d; want 64 hex chars", len(base))
	}
	variants := []string{
		UID("s3_bucket_public_access", "123456789012", "us-east-1", "data"),
		UID("s3_bucket_public_access", "123456789012", "eu-west-1", "logs"),
		UID("s3_bucket_public_access", "999999999999", "us-east-1", "logs"),
		UID("iam_root_mfa_enabled", "123456789012", "us-east-1", "logs"),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base UID", i)
		}
	}
	for _, c := range base {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("UID contains non-hex char %q", c)
		}
	}
}
