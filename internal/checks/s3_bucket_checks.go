package checks

import "fmt"

// S3BucketPublicAccessCheck flags buckets whose policy makes them public.
type S3BucketPublicAccessCheck struct{}

func (S3BucketPublicAccessCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "s3_bucket_public_access",
		CheckTitle:         "Ensure there are no S3 buckets open to everyone",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards", "CIS AWS Foundations Benchmark"},
		ServiceName:        "s3",
		ResourceIDTemplate: "arn:partition:s3:::bucket-name",
		Severity:           SeverityCritical,
		ResourceType:       "AwsS3Bucket",
		Description:        "Ensure there are no S3 buckets open to everyone or any AWS user.",
		Risk:               "A public bucket allows anyone on the internet to list or read its objects.",
		RelatedURL:         "https://docs.aws.amazon.com/AmazonS3/latest/userguide/access-control-block-public-access.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws s3api put-public-access-block --bucket <bucket-name> --public-access-block-configuration BlockPublicAcls=true,IgnorePublicAcls=true,BlockPublicPolicy=true,RestrictPublicBuckets=true",
			},
			Recommendation: RemediationRecommendation{
				Text: "Enable the account-level and bucket-level Block Public Access settings and remove public statements from the bucket policy.",
				URL:  "https://docs.aws.amazon.com/AmazonS3/latest/userguide/access-control-block-public-access.html",
			},
		},
		Categories: []string{"internet-exposed"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"2.1.5"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Storage", "Simple Storage Service"}},
				},
			},
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

func (c S3BucketPublicAccessCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, bucket := range in.AWS.Buckets {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("S3 Bucket %s is not public.", bucket.Name),
			ResourceID:     bucket.Name,
			ResourceARN:    bucket.ARN,
			Region:         bucket.Region,
		}
		if bucket.Public {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("S3 Bucket %s has public access due to its bucket policy.", bucket.Name)
		}
		drafts = append(drafts, d)
	}
	return drafts
}

// S3BucketDefaultEncryptionCheck flags buckets without a default server-side
// encryption configuration.
type S3BucketDefaultEncryptionCheck struct{}

func (S3BucketDefaultEncryptionCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "s3_bucket_default_encryption",
		CheckTitle:         "Check if S3 buckets have default encryption enabled",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards"},
		ServiceName:        "s3",
		ResourceIDTemplate: "arn:partition:s3:::bucket-name",
		Severity:           SeverityMedium,
		ResourceType:       "AwsS3Bucket",
		Description:        "Check if S3 buckets have default server-side encryption enabled.",
		Risk:               "Objects written to a bucket without default encryption may be stored in plaintext.",
		RelatedURL:         "https://docs.aws.amazon.com/AmazonS3/latest/userguide/bucket-encryption.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws s3api put-bucket-encryption --bucket <bucket-name> --server-side-encryption-configuration '{\"Rules\":[{\"ApplyServerSideEncryptionByDefault\":{\"SSEAlgorithm\":\"aws:kms\"}}]}'",
			},
			Recommendation: RemediationRecommendation{
				Text: "Configure default SSE-KMS or SSE-S3 encryption on every bucket.",
				URL:  "https://docs.aws.amazon.com/AmazonS3/latest/userguide/default-bucket-encryption.html",
			},
		},
		Categories: []string{"encryption"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"2.1.1"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Storage", "Simple Storage Service"}},
				},
			},
		},
	}
}

func (c S3BucketDefaultEncryptionCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, bucket := range in.AWS.Buckets {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("S3 Bucket %s has default encryption enabled.", bucket.Name),
			ResourceID:     bucket.Name,
			ResourceARN:    bucket.ARN,
			Region:         bucket.Region,
		}
		if !bucket.DefaultEncryptionEnabled {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("S3 Bucket %s does not have default encryption enabled.", bucket.Name)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
