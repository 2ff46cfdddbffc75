package checks

import "fmt"

// IAMUserMFACheck flags IAM users with console access but no MFA device.
// Users without a login profile cannot sign in to the console and pass.
type IAMUserMFACheck struct{}

func (IAMUserMFACheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "iam_user_mfa_enabled_console_access",
		CheckTitle:         "Ensure MFA is enabled for all IAM users with console access",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards", "CIS AWS Foundations Benchmark"},
		ServiceName:        "iam",
		ResourceIDTemplate: "arn:partition:iam::account-id:user/user-name",
		Severity:           SeverityMedium,
		ResourceType:       "AwsIamUser",
		Description:        "Ensure multi-factor authentication is enabled for all IAM users that have a console password.",
		Risk:               "A leaked password is enough to take over a console user without MFA.",
		RelatedURL:         "https://docs.aws.amazon.com/IAM/latest/UserGuide/id_credentials_mfa.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws iam enable-mfa-device --user-name <user-name> --serial-number <mfa-arn> --authentication-code1 <code1> --authentication-code2 <code2>",
			},
			Recommendation: RemediationRecommendation{
				Text: "Enable a virtual or hardware MFA device for every user with console access.",
				URL:  "https://docs.aws.amazon.com/IAM/latest/UserGuide/id_credentials_mfa_enable.html",
			},
		},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"1.10"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Identity and Access Management"}},
				},
			},
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1078"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1078.004"}},
				},
			},
		},
	}
}

func (c IAMUserMFACheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, user := range in.AWS.IAMUsers {
		d := Draft{
			ResourceID:  user.UserName,
			ResourceARN: user.ARN,
			Region:      "us-east-1",
		}
		switch {
		case !user.HasLoginProfile:
			d.Status = StatusPass
			d.StatusExtended = fmt.Sprintf("User %s does not have console access.", user.UserName)
		case user.MFAEnabled:
			d.Status = StatusPass
			d.StatusExtended = fmt.Sprintf("User %s has console access and MFA enabled.", user.UserName)
		default:
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("User %s has console access but MFA is not enabled.", user.UserName)
		}
		drafts = append(drafts, d)
	}
	return drafts
}

// IAMRootAccessKeyCheck flags the root account when it has active access
// keys. No draft is emitted when the credential posture could not be read.
type IAMRootAccessKeyCheck struct{}

func (IAMRootAccessKeyCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "iam_no_root_access_key",
		CheckTitle:         "Ensure no root account access key exists",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards", "CIS AWS Foundations Benchmark"},
		ServiceName:        "iam",
		SubServiceName:     "root",
		ResourceIDTemplate: "arn:partition:iam::account-id:root",
		Severity:           SeverityCritical,
		ResourceType:       "AwsIamUser",
		Description:        "Ensure no root account access key exists.",
		Risk:               "Root access keys grant unrestricted programmatic access to the whole account and cannot be permission-scoped.",
		RelatedURL:         "https://docs.aws.amazon.com/IAM/latest/UserGuide/id_root-user.html",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Delete the root access keys and use IAM roles for programmatic access.",
				URL:  "https://docs.aws.amazon.com/IAM/latest/UserGuide/best-practices.html#lock-away-credentials",
			},
		},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"1.4"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Identity and Access Management"}},
				},
			},
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1078"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1078.004"}},
				},
			},
		},
	}
}

func (c IAMRootAccessKeyCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil || !in.AWS.Root.DataAvailable {
		return nil
	}
	d := Draft{
		Status:         StatusPass,
		StatusExtended: "Root account does not have access keys.",
		ResourceID:     "root",
		Region:         "us-east-1",
	}
	if in.AWS.Root.HasAccessKeys {
		d.Status = StatusFail
		d.StatusExtended = "Root account has active access keys."
	}
	return []Draft{d}
}

// IAMRootMFACheck flags the root account when MFA is not enabled. No draft
// is emitted when the credential posture could not be read.
type IAMRootMFACheck struct{}

func (IAMRootMFACheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "iam_root_mfa_enabled",
		CheckTitle:         "Ensure MFA is enabled for the root account",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards", "CIS AWS Foundations Benchmark"},
		ServiceName:        "iam",
		SubServiceName:     "root",
		ResourceIDTemplate: "arn:partition:iam::account-id:root",
		Severity:           SeverityCritical,
		ResourceType:       "AwsIamUser",
		Description:        "Ensure MFA is enabled for the root account.",
		Risk:               "The root account can perform every action in the account; without MFA a single leaked password compromises everything.",
		RelatedURL:         "https://docs.aws.amazon.com/IAM/latest/UserGuide/id_credentials_mfa.html",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Enable a hardware MFA device for the root account and store it securely.",
				URL:  "https://docs.aws.amazon.com/IAM/latest/UserGuide/id_credentials_mfa_enable_virtual.html",
			},
		},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"1.5"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Identity and Access Management"}},
				},
			},
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1078"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1078.004"}},
				},
			},
		},
	}
}

func (c IAMRootMFACheck) Execute(in Inputs) []Draft {
	if in.AWS == nil || !in.AWS.Root.DataAvailable {
		return nil
	}
	d := Draft{
		Status:         StatusPass,
		StatusExtended: "Root account has MFA enabled.",
		ResourceID:     "root",
		Region:         "us-east-1",
	}
	if !in.AWS.Root.MFAEnabled {
		d.Status = StatusFail
		d.StatusExtended = "Root account does not have MFA enabled."
	}
	return []Draft{d}
}
