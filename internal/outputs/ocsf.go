package outputs

import (
	"github.com/deepak-negi-devops/cloudvet/internal/findings"
)

// Open-schema status IDs for the binary scan outcomes.
const (
	ocsfStatusSuccessID = 1
	ocsfStatusFailureID = 2
)

// ocsfSeverityIDs maps severity strings to the fixed numeric IDs of the
// open-schema format. Unrecognized severities stay unset (0).
var ocsfSeverityIDs = map[string]int{
	"low":      2,
	"medium":   3,
	"high":     4,
	"critical": 5,
}

// OCSFAccount identifies the cloud account in an open-schema record.
type OCSFAccount struct {
	Name string `json:"name"`
	UID  string `json:"uid"`
}

// OCSFOrganization identifies the account's organization.
type OCSFOrganization struct {
	Name string `json:"name"`
	UID  string `json:"uid"`
}

// OCSFCloud is the cloud sub-object. Account and Org are populated per
// source provider; providers without organization metadata leave them null.
type OCSFCloud struct {
	Account  *OCSFAccount      `json:"account"`
	Org      *OCSFOrganization `json:"org"`
	Provider string            `json:"provider"`
	Region   string            `json:"region"`
}

// OCSFGroup names the resource group (the provider service).
type OCSFGroup struct {
	Name string `json:"name"`
}

// OCSFResource is one resource entry of an open-schema record.
type OCSFResource struct {
	Group OCSFGroup `json:"group"`
	UID   string    `json:"uid"`
	Type  string    `json:"type"`
}

// OCSFFindingInfo carries the finding title and feature UID, both mirrored
// from the check type.
type OCSFFindingInfo struct {
	Title      string `json:"title"`
	FeatureUID string `json:"feature_uid"`
}

// OCSFCompliance is the compliance sub-object.
type OCSFCompliance struct {
	Status       string   `json:"status"`
	Requirements []string `json:"requirements"`
}

// OCSFRecord is one finding in the open-schema export format.
type OCSFRecord struct {
	Message      string          `json:"message"`
	StatusDetail string          `json:"status_detail"`
	Status       string          `json:"status"`
	StatusID     int             `json:"status_id,omitempty"`
	Severity     string          `json:"severity"`
	SeverityID   int             `json:"severity_id,omitempty"`
	FindingInfo  OCSFFindingInfo `json:"finding_info"`
	Resources    []OCSFResource  `json:"resources"`
	Compliance   OCSFCompliance  `json:"compliance"`
	Cloud        OCSFCloud       `json:"cloud"`
	Time         string          `json:"time"`
}

// NewOCSF maps a canonical finding to the open-schema format.
//
// PASS/FAIL map to Success/Failure with status IDs 1/2 via the explicit
// tables above; other statuses leave status and ID unset. The cloud account
// and org sub-objects depend on the source provider: AWS populates the
// account from the audit context and the org only when organization metadata
// is present; Kubernetes carries neither, so both stay null.
func NewOCSF(f findings.Finding) OCSFRecord {
	rec := OCSFRecord{
		Message:      f.StatusExtended,
		StatusDetail: f.StatusExtended,
		Severity:     f.Severity,
		SeverityID:   ocsfSeverityIDs[f.Severity],
		FindingInfo: OCSFFindingInfo{
			Title:      f.CheckType,
			FeatureUID: f.CheckType,
		},
		Resources: []OCSFResource{{
			Group: OCSFGroup{Name: f.ServiceName},
			UID:   f.ResourceARN,
			Type:  f.ResourceType,
		}},
		Cloud: OCSFCloud{
			Provider: f.Provider,
			Region:   f.Region,
		},
		Time: f.AssessmentTime.UTC().Format(asffTimeFormat),
	}

	switch f.Status {
	case "PASS":
		rec.Status = "Success"
		rec.StatusID = ocsfStatusSuccessID
	case "FAIL":
		rec.Status = "Failure"
		rec.StatusID = ocsfStatusFailureID
	}
	rec.Compliance = OCSFCompliance{
		Status:       rec.Status,
		Requirements: findings.DecodeList(f.Compliance),
	}

	if f.Provider == "aws" {
		rec.Cloud.Account = &OCSFAccount{Name: f.OrgName, UID: f.AccountID}
		if f.OrgID != "" || f.OrgName != "" {
			rec.Cloud.Org = &OCSFOrganization{Name: f.OrgName, UID: f.OrgID}
		}
	}

	return rec
}

// OCSFWriter streams open-schema records into an array-wrapped file.
type OCSFWriter struct {
	w *JSONArrayWriter
}

// NewOCSFWriter opens the export file at path.
func NewOCSFWriter(path string) (*OCSFWriter, error) {
	w, err := NewJSONArrayWriter(path)
	if err != nil {
		return nil, err
	}
	return &OCSFWriter{w: w}, nil
}

// Write appends one finding.
func (o *OCSFWriter) Write(f findings.Finding) error {
	return o.w.Write(NewOCSF(f))
}

// Finalize closes the array and the file.
func (o *OCSFWriter) Finalize() error {
	return o.w.Finalize()
}
