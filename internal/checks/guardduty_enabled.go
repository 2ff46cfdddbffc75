package checks

import "fmt"

// GuardDutyEnabledCheck flags regions without an enabled GuardDuty detector.
// One draft is emitted per region whose status was collected.
type GuardDutyEnabledCheck struct{}

func (GuardDutyEnabledCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "guardduty_is_enabled",
		CheckTitle:         "Check if GuardDuty is enabled",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards"},
		ServiceName:        "guardduty",
		ResourceIDTemplate: "arn:partition:guardduty:region:account-id:detector/detector-id",
		Severity:           SeverityHigh,
		ResourceType:       "AwsGuardDutyDetector",
		Description:        "Check if GuardDuty is enabled in every active region.",
		Risk:               "Regions without GuardDuty have no managed threat detection; malicious activity there goes unnoticed.",
		RelatedURL:         "https://docs.aws.amazon.com/guardduty/latest/ug/what-is-guardduty.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws guardduty create-detector --enable",
			},
			Recommendation: RemediationRecommendation{
				Text: "Enable GuardDuty in every active region, preferably through the organization-wide delegated administrator.",
				URL:  "https://docs.aws.amazon.com/guardduty/latest/ug/guardduty_settingup.html",
			},
		},
		Categories: []string{"threat-detection"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1562"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1562.001"}},
				},
			},
		},
	}
}

func (c GuardDutyEnabledCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, status := range in.AWS.GuardDuty {
		if !status.DataAvailable {
			continue
		}
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("GuardDuty is enabled in region %s.", status.Region),
			ResourceID:     "guardduty",
			Region:         status.Region,
		}
		if !status.Enabled {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("GuardDuty is not enabled in region %s.", status.Region)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
