package outputs

import (
	"encoding/csv"
	"os"

	"github.com/deepak-negi-devops/cloudvet/internal/compliance"
	"github.com/deepak-negi-devops/cloudvet/internal/findings"
)

// complianceCSVHeader is the column set of the tabular compliance export.
// Downstream report browsing splits on these exact names.
var complianceCSVHeader = []string{
	"CHECKID",
	"STATUS",
	"REGION",
	"ACCOUNTID",
	"RESOURCEID",
	"REQUIREMENTS_ID",
	"REQUIREMENTS_SUBTECHNIQUES",
	"ASSESSMENTDATE",
}

// WriteComplianceCSV writes the semicolon-delimited compliance report for one
// framework to path. Rows are built from the canonical findings' encoded
// compliance entries and written in finding-stream order.
func WriteComplianceCSV(path string, fs []findings.Finding, framework string) error {
	rows := compliance.BuildRows(fs, framework)

	f, err := os.Create(path)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(complianceCSVHeader); err != nil {
		f.Close()
		return &ExportError{Path: path, Err: err}
	}
	for _, r := range rows {
		record := []string{
			r.CheckID,
			r.Status,
			r.Region,
			r.AccountID,
			r.ResourceID,
			r.RequirementID,
			r.SubRequirement,
			r.AssessmentDay,
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return &ExportError{Path: path, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &ExportError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}
