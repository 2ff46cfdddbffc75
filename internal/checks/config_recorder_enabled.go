package checks

import "fmt"

// ConfigRecorderEnabledCheck flags regions where no AWS Config recorder is
// recording. One draft is emitted per region whose status was collected.
type ConfigRecorderEnabledCheck struct{}

func (ConfigRecorderEnabledCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "config_recorder_all_regions_enabled",
		CheckTitle:         "Ensure AWS Config is enabled in all regions",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards", "CIS AWS Foundations Benchmark"},
		ServiceName:        "config",
		ResourceIDTemplate: "arn:partition:config:region:account-id:config-recorder/recorder-name",
		Severity:           SeverityMedium,
		ResourceType:       "AwsConfigConfigurationRecorder",
		Description:        "Ensure AWS Config is enabled and recording in all regions.",
		Risk:               "Without configuration recording there is no history of resource changes to investigate after an incident.",
		RelatedURL:         "https://docs.aws.amazon.com/config/latest/developerguide/WhatIsConfig.html",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Enable an AWS Config recorder covering all resource types in every active region.",
				URL:  "https://docs.aws.amazon.com/config/latest/developerguide/gs-console.html",
			},
		},
		Categories: []string{"forensics-ready"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"3.5"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Logging"}},
				},
			},
		},
	}
}

func (c ConfigRecorderEnabledCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, status := range in.AWS.ConfigRecorders {
		if !status.DataAvailable {
			continue
		}
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("AWS Config is recording in region %s.", status.Region),
			ResourceID:     "config",
			Region:         status.Region,
		}
		if !status.Recording {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("AWS Config is not recording in region %s.", status.Region)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
