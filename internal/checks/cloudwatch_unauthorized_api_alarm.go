package checks

import "fmt"

// unauthorizedAPIMetricName is the conventional CloudWatch metric filter
// name for unauthorized API call monitoring.
const unauthorizedAPIMetricName = "UnauthorizedAPICalls"

// CloudWatchUnauthorizedAPIAlarmCheck flags regions without a metric alarm
// on unauthorized API calls. One draft is emitted per scanned region.
type CloudWatchUnauthorizedAPIAlarmCheck struct{}

func (CloudWatchUnauthorizedAPIAlarmCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "cloudwatch_unauthorized_api_calls_alarm_configured",
		CheckTitle:         "Ensure a log metric filter and alarm exist for unauthorized API calls",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards", "CIS AWS Foundations Benchmark"},
		ServiceName:        "cloudwatch",
		ResourceIDTemplate: "arn:partition:cloudwatch:region:account-id:alarm:alarm-name",
		Severity:           SeverityMedium,
		ResourceType:       "AwsCloudWatchAlarm",
		Description:        "Ensure a metric filter and alarm exist for unauthorized API calls.",
		Risk:               "Unauthorized API activity without an alarm goes unreviewed until damage is done.",
		RelatedURL:         "https://docs.aws.amazon.com/AmazonCloudWatch/latest/logs/MonitoringPolicyExamples.html",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Create a CloudTrail log metric filter for unauthorized API calls and alarm on it.",
				URL:  "https://docs.aws.amazon.com/securityhub/latest/userguide/cloudwatch-controls.html",
			},
		},
		Categories: []string{"logging"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"4.1"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Monitoring"}},
				},
			},
		},
	}
}

func (c CloudWatchUnauthorizedAPIAlarmCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}

	// Alarm inventory has no per-region status row, so derive the region set
	// from the scanned regions that reported any status (GuardDuty rows are
	// collected for every scanned region).
	regions := map[string]bool{}
	var order []string
	for _, status := range in.AWS.GuardDuty {
		if !regions[status.Region] {
			regions[status.Region] = true
			order = append(order, status.Region)
		}
	}

	alarmed := map[string]bool{}
	for _, alarm := range in.AWS.MetricAlarms {
		if alarm.MetricName == unauthorizedAPIMetricName {
			alarmed[alarm.Region] = true
		}
	}

	var drafts []Draft
	for _, region := range order {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("An unauthorized API calls alarm is configured in region %s.", region),
			ResourceID:     "cloudwatch",
			Region:         region,
		}
		if !alarmed[region] {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("No unauthorized API calls alarm is configured in region %s.", region)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
