package checks

import "fmt"

// EC2EBSSnapshotPublicCheck flags EBS snapshots restorable by any AWS
// account.
type EC2EBSSnapshotPublicCheck struct{}

func (EC2EBSSnapshotPublicCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "ec2_ebs_public_snapshot",
		CheckTitle:         "Ensure there are no EBS Snapshots set as Public",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards"},
		ServiceName:        "ec2",
		SubServiceName:     "ebs",
		ResourceIDTemplate: "arn:partition:ec2:region:account-id:snapshot/snapshot-id",
		Severity:           SeverityCritical,
		ResourceType:       "AwsEc2Snapshot",
		Description:        "Ensure there are no EBS Snapshots set as Public.",
		Risk:               "A public snapshot can be copied and restored by any AWS account, leaking every block of the source volume.",
		RelatedURL:         "https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/ebs-modifying-snapshot-permissions.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws ec2 modify-snapshot-attribute --snapshot-id <snapshot-id> --attribute createVolumePermission --operation-type remove --group-names all",
			},
			Recommendation: RemediationRecommendation{
				Text: "Remove the createVolumePermission grant for the all group and share snapshots with explicit account IDs only.",
			},
		},
		Categories: []string{"internet-exposed"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1530"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1530.000"}},
				},
			},
		},
	}
}

func (c EC2EBSSnapshotPublicCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, snap := range in.AWS.Snapshots {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("EBS Snapshot %s is not Public.", snap.SnapshotID),
			ResourceID:     snap.SnapshotID,
			ResourceARN:    snap.ARN,
			Region:         snap.Region,
		}
		if snap.Public {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("EBS Snapshot %s is currently Public.", snap.SnapshotID)
		}
		drafts = append(drafts, d)
	}
	return drafts
}

// EC2EBSSnapshotEncryptedCheck flags unencrypted EBS snapshots.
type EC2EBSSnapshotEncryptedCheck struct{}

func (EC2EBSSnapshotEncryptedCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "ec2_ebs_snapshots_encrypted",
		CheckTitle:         "Ensure EBS Snapshots are encrypted",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards"},
		ServiceName:        "ec2",
		SubServiceName:     "ebs",
		ResourceIDTemplate: "arn:partition:ec2:region:account-id:snapshot/snapshot-id",
		Severity:           SeverityMedium,
		ResourceType:       "AwsEc2Snapshot",
		Description:        "Ensure EBS Snapshots are encrypted.",
		Risk:               "Unencrypted snapshot data is readable by anyone who gains access to the snapshot or to a volume restored from it.",
		RelatedURL:         "https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/EBSEncryption.html",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Enable EBS encryption by default and re-create unencrypted snapshots from encrypted volumes.",
				URL:  "https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/EBSEncryption.html#encryption-by-default",
			},
		},
		Categories: []string{"encryption"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"2.2.1"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Storage", "Elastic Block Store"}},
				},
			},
		},
	}
}

func (c EC2EBSSnapshotEncryptedCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, snap := range in.AWS.Snapshots {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("EBS Snapshot %s is encrypted.", snap.SnapshotID),
			ResourceID:     snap.SnapshotID,
			ResourceARN:    snap.ARN,
			Region:         snap.Region,
		}
		if !snap.Encrypted {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("EBS Snapshot %s is unencrypted.", snap.SnapshotID)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
