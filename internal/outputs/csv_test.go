package outputs

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	"github.com/deepak-negi-devops/cloudvet/internal/findings"
)

// TestWriteComplianceCSV verifies the semicolon-delimited export: header,
// per-requirement row expansion, and framework filtering.
func TestWriteComplianceCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compliance.csv")
	fs := []findings.Finding{
		{
			CheckID:        "iam_root_mfa_enabled",
			Status:         "FAIL",
			Region:         "us-east-1",
			AccountID:      "123456789012",
			ResourceID:     "root",
			AssessmentTime: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			ComplianceEntries: []checks.ComplianceEntry{
				{Framework: "CIS-AWS-1.5", Requirements: []string{"1.5", "1.6"}},
				{Framework: "MITRE-ATTACK", Requirements: []string{"T1078"}},
			},
		},
	}

	if err := WriteComplianceCSV(path, fs, "CIS-AWS-1.5"); err != nil {
		t.Fatalf("WriteComplianceCSV error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("records = %d; want header + one row per CIS requirement", len(records))
	}
	if records[0][0] != "CHECKID" || records[0][7] != "ASSESSMENTDATE" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][5] != "1.5" || records[2][5] != "1.6" {
		t.Errorf("requirement columns = %q, %q; want 1.5 and 1.6", records[1][5], records[2][5])
	}
	if records[1][7] != "2026-08-01" {
		t.Errorf("assessment day = %q; want 2026-08-01", records[1][7])
	}
	for _, rec := range records[1:] {
		if rec[0] != "iam_root_mfa_enabled" || rec[1] != "FAIL" {
			t.Errorf("row = %v; want check identity carried on every row", rec)
		}
	}
}

// TestWriteComplianceCSV_NoMatchingFramework verifies a header-only file.
func TestWriteComplianceCSV_NoMatchingFramework(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := WriteComplianceCSV(path, nil, "CIS-AWS-1.5"); err != nil {
		t.Fatalf("WriteComplianceCSV error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "CHECKID;STATUS;REGION;ACCOUNTID;RESOURCEID;REQUIREMENTS_ID;REQUIREMENTS_SUBTECHNIQUES;ASSESSMENTDATE\n"
	if string(data) != want {
		t.Errorf("export = %q; want header only", data)
	}
}

// TestWriteComplianceCSV_BadPath verifies the fatal ExportError path.
func TestWriteComplianceCSV_BadPath(t *testing.T) {
	err := WriteComplianceCSV(filepath.Join(t.TempDir(), "missing", "x.csv"), nil, "CIS-AWS-1.5")
	if err == nil {
		t.Fatal("WriteComplianceCSV to missing dir: want error, got nil")
	}
}
