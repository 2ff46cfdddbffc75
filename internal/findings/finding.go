// Package findings turns check drafts into canonical findings: the immutable,
// fully flattened records consumed by every exporter and by the compliance
// aggregator. Nested check metadata (type lists, tag sets, compliance trees)
// is encoded into deterministic delimiter-joined strings here, once, so all
// downstream formats agree on the same values.
package findings

import (
	"time"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	"github.com/deepak-negi-devops/cloudvet/internal/scan"
)

// SentinelResourceID replaces an empty resource reference. Downstream formats
// require a non-empty resource ID, so a finding without one is normalised
// rather than rejected.
const SentinelResourceID = "NONE_PROVIDED"

// Finding is the canonical record for one check evaluated against one
// resource. All nested metadata is pre-flattened; fields holding encoded
// lists or trees are documented as such. Immutable after New returns it.
type Finding struct {
	UID            string `json:"uid"`
	Status         string `json:"status"`
	StatusExtended string `json:"status_extended"`

	Provider  string `json:"provider"`
	AccountID string `json:"account_id"`
	Partition string `json:"partition"`
	Profile   string `json:"profile"`
	Region    string `json:"region"`

	CheckID        string `json:"check_id"`
	CheckTitle     string `json:"check_title"`
	CheckType      string `json:"check_type"` // "|"-joined
	ServiceName    string `json:"service_name"`
	SubServiceName string `json:"sub_service_name"`
	Severity       string `json:"severity"`
	ResourceType   string `json:"resource_type"`

	ResourceID      string `json:"resource_id"`
	ResourceARN     string `json:"resource_arn"`
	ResourceDetails string `json:"resource_details"`
	ResourceTags    string `json:"resource_tags"` // "key:value|..." sorted by key

	Description string `json:"description"`
	Risk        string `json:"risk"`
	RelatedURL  string `json:"related_url"`

	RemediationText          string `json:"remediation_recommendation_text"`
	RemediationURL           string `json:"remediation_recommendation_url"`
	RemediationCodeNativeIaC string `json:"remediation_code_nativeiac"`
	RemediationCodeTerraform string `json:"remediation_code_terraform"`
	RemediationCodeCLI       string `json:"remediation_code_cli"`
	RemediationCodeOther     string `json:"remediation_code_other"`

	Categories string `json:"categories"` // "|"-joined
	Tags       string `json:"tags"`       // "key:value|..." in declared order
	DependsOn  string `json:"depends_on"` // "|"-joined
	RelatedTo  string `json:"related_to"` // "|"-joined
	Notes      string `json:"notes"`

	// Compliance is the flattened framework tree; see UnrollCompliance.
	Compliance string `json:"compliance"`

	AssessmentTime time.Time `json:"assessment_time"`

	OrgName  string `json:"account_org_name"`
	OrgEmail string `json:"account_org_email"`
	OrgARN   string `json:"account_org_arn"`
	OrgID    string `json:"account_org_id"`

	// ComplianceEntries keeps the structured tree alongside the encoded
	// string for consumers that group by framework (ASFF summary lines,
	// requirement rollups). Shared read-only from the check metadata.
	ComplianceEntries []checks.ComplianceEntry `json:"-"`
}

// New encodes a draft into a canonical finding using the check's metadata and
// the run's audit context.
//
// An empty resource ID is replaced with the NONE_PROVIDED sentinel, and an
// empty ARN falls back to the resource ID, mirroring what downstream
// security-finding consumers require. The UID is derived after that
// normalisation so reruns on identical input produce identical identities.
func New(d checks.Draft, meta checks.Metadata, sc *scan.Context) Finding {
	resourceID := d.ResourceID
	resourceARN := d.ResourceARN
	if resourceARN == "" {
		if resourceID == "" {
			resourceID = SentinelResourceID
		}
		resourceARN = resourceID
	} else if resourceID == "" {
		resourceID = SentinelResourceID
	}

	return Finding{
		UID:            UID(meta.CheckID, sc.AccountID, d.Region, resourceID),
		Status:         string(d.Status),
		StatusExtended: d.StatusExtended,

		Provider:  meta.Provider,
		AccountID: sc.AccountID,
		Partition: sc.Partition,
		Profile:   sc.Profile,
		Region:    d.Region,

		CheckID:        meta.CheckID,
		CheckTitle:     meta.CheckTitle,
		CheckType:      UnrollList(meta.CheckType),
		ServiceName:    meta.ServiceName,
		SubServiceName: meta.SubServiceName,
		Severity:       meta.Severity,
		ResourceType:   meta.ResourceType,

		ResourceID:      resourceID,
		ResourceARN:     resourceARN,
		ResourceDetails: d.ResourceDetails,
		ResourceTags:    UnrollTagMap(d.ResourceTags),

		Description: meta.Description,
		Risk:        meta.Risk,
		RelatedURL:  meta.RelatedURL,

		RemediationText:          meta.Remediation.Recommendation.Text,
		RemediationURL:           meta.Remediation.Recommendation.URL,
		RemediationCodeNativeIaC: meta.Remediation.Code.NativeIaC,
		RemediationCodeTerraform: meta.Remediation.Code.Terraform,
		RemediationCodeCLI:       meta.Remediation.Code.CLI,
		RemediationCodeOther:     meta.Remediation.Code.Other,

		Categories: UnrollList(meta.Categories),
		Tags:       UnrollTags(meta.Tags),
		DependsOn:  UnrollList(meta.DependsOn),
		RelatedTo:  UnrollList(meta.RelatedTo),
		Notes:      meta.Notes,

		Compliance: UnrollCompliance(meta.Compliance),

		AssessmentTime: sc.AssessmentTime,

		OrgName:  sc.Organization.Name,
		OrgEmail: sc.Organization.Email,
		OrgARN:   sc.Organization.ARN,
		OrgID:    sc.Organization.OrgID,

		ComplianceEntries: meta.Compliance,
	}
}

// Encode converts every draft of every check result into canonical findings,
// preserving check-runner emission order: results are walked in registration
// order and drafts in the order the check emitted them.
func Encode(results []checks.Result, sc *scan.Context) []Finding {
	var out []Finding
	for _, res := range results {
		for _, d := range res.Drafts {
			out = append(out, New(d, res.Metadata, sc))
		}
	}
	return out
}
