package checks

import "fmt"

// RDSStorageEncryptedCheck flags RDS instances without storage encryption.
type RDSStorageEncryptedCheck struct{}

func (RDSStorageEncryptedCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "rds_instance_storage_encrypted",
		CheckTitle:         "Check if RDS instances have storage encrypted",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards"},
		ServiceName:        "rds",
		ResourceIDTemplate: "arn:partition:rds:region:account-id:db:db-instance-id",
		Severity:           SeverityMedium,
		ResourceType:       "AwsRdsDbInstance",
		Description:        "Check if RDS instances have storage encryption enabled.",
		Risk:               "Unencrypted database storage exposes data at rest, including automated backups and snapshots derived from it.",
		RelatedURL:         "https://docs.aws.amazon.com/AmazonRDS/latest/UserGuide/Overview.Encryption.html",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Recreate the instance from an encrypted snapshot copy; encryption cannot be enabled in place.",
				URL:  "https://docs.aws.amazon.com/AmazonRDS/latest/UserGuide/Overview.Encryption.html#Overview.Encryption.Enabling",
			},
		},
		Categories: []string{"encryption"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"2.3.1"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Storage", "Relational Database Service"}},
				},
			},
		},
	}
}

func (c RDSStorageEncryptedCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, db := range in.AWS.RDSInstances {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("RDS Instance %s is encrypted.", db.DBInstanceID),
			ResourceID:     db.DBInstanceID,
			ResourceARN:    db.ARN,
			Region:         db.Region,
		}
		if !db.StorageEncrypted {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("RDS Instance %s is not encrypted.", db.DBInstanceID)
		}
		drafts = append(drafts, d)
	}
	return drafts
}

// RDSNoPublicAccessCheck flags RDS instances marked publicly accessible.
type RDSNoPublicAccessCheck struct{}

func (RDSNoPublicAccessCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "rds_instance_no_public_access",
		CheckTitle:         "Ensure there are no publicly accessible RDS instances",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards"},
		ServiceName:        "rds",
		ResourceIDTemplate: "arn:partition:rds:region:account-id:db:db-instance-id",
		Severity:           SeverityHigh,
		ResourceType:       "AwsRdsDbInstance",
		Description:        "Ensure there are no RDS instances with the PubliclyAccessible flag set.",
		Risk:               "A publicly accessible database endpoint is resolvable and reachable from the internet.",
		RelatedURL:         "https://docs.aws.amazon.com/AmazonRDS/latest/UserGuide/USER_VPC.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws rds modify-db-instance --db-instance-identifier <db-instance-id> --no-publicly-accessible",
			},
			Recommendation: RemediationRecommendation{
				Text: "Disable public accessibility and reach the database through the VPC.",
				URL:  "https://docs.aws.amazon.com/AmazonRDS/latest/UserGuide/USER_VPC.Scenarios.html",
			},
		},
		Categories: []string{"internet-exposed"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1190"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1190.000"}},
				},
			},
		},
	}
}

func (c RDSNoPublicAccessCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, db := range in.AWS.RDSInstances {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("RDS Instance %s is not publicly accessible.", db.DBInstanceID),
			ResourceID:     db.DBInstanceID,
			ResourceARN:    db.ARN,
			Region:         db.Region,
		}
		if db.PubliclyAccessible {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("RDS Instance %s is set as publicly accessible.", db.DBInstanceID)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
