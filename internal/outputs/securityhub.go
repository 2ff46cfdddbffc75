package outputs

import (
	"fmt"
	"strings"

	"github.com/deepak-negi-devops/cloudvet/internal/findings"
	"github.com/deepak-negi-devops/cloudvet/internal/version"
)

// maxComplianceSummaryLen is the consumer-side field length limit for each
// per-framework summary string. Truncation happens after the summary is
// built, never before.
const maxComplianceSummaryLen = 64

// asffTimeFormat is the timestamp layout the security-finding schema expects.
const asffTimeFormat = "2006-01-02T15:04:05Z"

// ASFFSeverity is the severity object of a security-finding record.
type ASFFSeverity struct {
	Label string `json:"Label"`
}

// ASFFResource is one entry in a finding's resource list.
type ASFFResource struct {
	ID        string `json:"Id"`
	Type      string `json:"Type"`
	Partition string `json:"Partition"`
	Region    string `json:"Region"`
}

// ASFFStandard identifies a compliance framework associated with a finding.
type ASFFStandard struct {
	StandardsID string `json:"StandardsId"`
}

// ASFFCompliance is the compliance object of a security-finding record.
type ASFFCompliance struct {
	Status              string         `json:"Status"`
	AssociatedStandards []ASFFStandard `json:"AssociatedStandards"`
	RelatedRequirements []string       `json:"RelatedRequirements"`
}

// ASFFProductFields carries product-specific metadata.
type ASFFProductFields struct {
	ProviderVersion string `json:"ProviderVersion"`
	ResourceName    string `json:"ResourceName"`
}

// ASFFRecommendation is the remediation recommendation sub-object.
type ASFFRecommendation struct {
	Text string `json:"Text"`
	URL  string `json:"Url"`
}

// ASFFRemediation wraps the recommendation.
type ASFFRemediation struct {
	Recommendation ASFFRecommendation `json:"Recommendation"`
}

// ASFFFinding is one finding in the security-finding export format.
type ASFFFinding struct {
	SchemaVersion   string            `json:"SchemaVersion"`
	ID              string            `json:"Id"`
	ProductArn      string            `json:"ProductArn"`
	ProductFields   ASFFProductFields `json:"ProductFields"`
	GeneratorID     string            `json:"GeneratorId"`
	AwsAccountID    string            `json:"AwsAccountId"`
	Types           []string          `json:"Types"`
	FirstObservedAt string            `json:"FirstObservedAt"`
	UpdatedAt       string            `json:"UpdatedAt"`
	CreatedAt       string            `json:"CreatedAt"`
	Severity        ASFFSeverity      `json:"Severity"`
	Title           string            `json:"Title"`
	Description     string            `json:"Description"`
	Resources       []ASFFResource    `json:"Resources"`
	Compliance      ASFFCompliance    `json:"Compliance"`
	Remediation     ASFFRemediation   `json:"Remediation"`
}

// NewASFF maps a canonical finding to the security-finding format.
//
// The record ID is synthetic but stable: it embeds the finding's
// content-addressed UID so reruns over identical input produce identical IDs.
// The three observation timestamps are intentionally identical (the scanner
// observes, updates, and creates the finding in the same instant).
func NewASFF(f findings.Finding) ASFFFinding {
	ts := f.AssessmentTime.UTC().Format(asffTimeFormat)

	var standards []ASFFStandard
	var summary []string
	for _, e := range f.ComplianceEntries {
		standards = append(standards, ASFFStandard{StandardsID: e.Framework})
		item := e.Framework + " " + strings.Join(e.Requirements, " ")
		if len(item) > maxComplianceSummaryLen {
			item = item[:maxComplianceSummaryLen]
		}
		summary = append(summary, item)
	}

	return ASFFFinding{
		SchemaVersion: "2018-10-08",
		ID: fmt.Sprintf("cloudvet-%s-%s-%s-%s",
			f.CheckID, f.AccountID, f.Region, f.UID),
		ProductArn: fmt.Sprintf("arn:%s:securityhub:%s::product/cloudvet/cloudvet",
			f.Partition, f.Region),
		ProductFields: ASFFProductFields{
			ProviderVersion: version.Version,
			ResourceName:    f.ResourceARN,
		},
		GeneratorID:     "cloudvet-" + f.CheckID,
		AwsAccountID:    f.AccountID,
		Types:           findings.DecodeList(f.CheckType),
		FirstObservedAt: ts,
		UpdatedAt:       ts,
		CreatedAt:       ts,
		Severity:        ASFFSeverity{Label: strings.ToUpper(f.Severity)},
		Title:           f.CheckTitle,
		Description:     f.StatusExtended,
		Resources: []ASFFResource{{
			ID:        f.ResourceARN,
			Type:      f.ResourceType,
			Partition: f.Partition,
			Region:    f.Region,
		}},
		Compliance: ASFFCompliance{
			Status:              asffStatus(f.Status),
			AssociatedStandards: standards,
			RelatedRequirements: summary,
		},
		Remediation: ASFFRemediation{
			Recommendation: ASFFRecommendation{
				Text: f.RemediationText,
				URL:  f.RemediationURL,
			},
		},
	}
}

// asffStatus renders PASS/FAIL with the fixed "ED" suffix the schema uses.
// Terminal non-binary statuses map to NOT_AVAILABLE.
func asffStatus(status string) string {
	switch status {
	case "PASS", "FAIL":
		return status + "ED"
	case "WARN":
		return "WARNING"
	default:
		return "NOT_AVAILABLE"
	}
}

// ASFFWriter streams security-finding records into an array-wrapped file.
type ASFFWriter struct {
	w *JSONArrayWriter
}

// NewASFFWriter opens the export file at path.
func NewASFFWriter(path string) (*ASFFWriter, error) {
	w, err := NewJSONArrayWriter(path)
	if err != nil {
		return nil, err
	}
	return &ASFFWriter{w: w}, nil
}

// Write appends one finding.
func (a *ASFFWriter) Write(f findings.Finding) error {
	return a.w.Write(NewASFF(f))
}

// Finalize closes the array and the file.
func (a *ASFFWriter) Finalize() error {
	return a.w.Finalize()
}
