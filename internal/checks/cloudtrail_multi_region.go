package checks

// CloudTrailMultiRegionCheck flags accounts without at least one multi-region
// trail. No draft is emitted when the trail configuration could not be read.
type CloudTrailMultiRegionCheck struct{}

func (CloudTrailMultiRegionCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "cloudtrail_multi_region_enabled",
		CheckTitle:         "Ensure CloudTrail is enabled in all regions",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards", "CIS AWS Foundations Benchmark"},
		ServiceName:        "cloudtrail",
		ResourceIDTemplate: "arn:partition:cloudtrail:region:account-id:trail/trail-name",
		Severity:           SeverityHigh,
		ResourceType:       "AwsCloudTrailTrail",
		Description:        "Ensure CloudTrail is enabled in all regions via a multi-region trail.",
		Risk:               "Without a multi-region trail, API activity in unmonitored regions leaves no audit record.",
		RelatedURL:         "https://docs.aws.amazon.com/awscloudtrail/latest/userguide/cloudtrail-concepts.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws cloudtrail create-trail --name <trail-name> --s3-bucket-name <bucket-name> --is-multi-region-trail",
			},
			Recommendation: RemediationRecommendation{
				Text: "Create a multi-region trail that delivers logs to a central, access-controlled bucket.",
				URL:  "https://docs.aws.amazon.com/awscloudtrail/latest/userguide/creating-trail-organization.html",
			},
		},
		Categories: []string{"forensics-ready"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"3.1"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Logging"}},
				},
			},
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1562"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1562.008"}},
				},
			},
		},
	}
}

func (c CloudTrailMultiRegionCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil || !in.AWS.CloudTrail.DataAvailable {
		return nil
	}
	d := Draft{
		Status:         StatusPass,
		StatusExtended: "At least one multi-region CloudTrail trail is enabled.",
		ResourceID:     "cloudtrail",
		Region:         "us-east-1",
	}
	if !in.AWS.CloudTrail.HasMultiRegionTrail {
		d.Status = StatusFail
		d.StatusExtended = "No multi-region CloudTrail trail is enabled."
	}
	return []Draft{d}
}
