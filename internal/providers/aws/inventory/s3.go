package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// collectS3Buckets lists all buckets in the account and resolves each
// bucket's public-policy status, default encryption, and location.
//
// The per-bucket lookups fail closed on the safe side: a bucket whose policy
// status cannot be read is treated as not public (S3 returns an error for
// buckets without any policy), and one whose encryption configuration cannot
// be read is treated as unencrypted (S3 returns an error when no default
// encryption is configured).
func collectS3Buckets(ctx context.Context, client s3APIClient, partition string) ([]models.S3Bucket, error) {
	out, err := client.ListBuckets(ctx, &s3svc.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("ListBuckets: %w", err)
	}

	buckets := make([]models.S3Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		name := aws.ToString(b.Name)
		buckets = append(buckets, models.S3Bucket{
			Name:                     name,
			ARN:                      fmt.Sprintf("arn:%s:s3:::%s", partition, name),
			Region:                   bucketRegion(ctx, client, name),
			Public:                   bucketIsPublic(ctx, client, name),
			DefaultEncryptionEnabled: bucketHasDefaultEncryption(ctx, client, name),
		})
	}
	return buckets, nil
}

// bucketRegion resolves a bucket's home region. The S3 API reports the
// us-east-1 location as an empty constraint.
func bucketRegion(ctx context.Context, client s3APIClient, name string) string {
	out, err := client.GetBucketLocation(ctx, &s3svc.GetBucketLocationInput{Bucket: aws.String(name)})
	if err != nil || out.LocationConstraint == "" {
		return "us-east-1"
	}
	return string(out.LocationConstraint)
}

// bucketIsPublic reports whether the bucket's policy makes it public.
// Buckets without a policy produce an API error and count as not public.
func bucketIsPublic(ctx context.Context, client s3APIClient, name string) bool {
	out, err := client.GetBucketPolicyStatus(ctx, &s3svc.GetBucketPolicyStatusInput{Bucket: aws.String(name)})
	if err != nil || out.PolicyStatus == nil {
		return false
	}
	return aws.ToBool(out.PolicyStatus.IsPublic)
}

// bucketHasDefaultEncryption reports whether the bucket has a default
// server-side encryption configuration. Buckets without one produce an API
// error and count as unencrypted.
func bucketHasDefaultEncryption(ctx context.Context, client s3APIClient, name string) bool {
	out, err := client.GetBucketEncryption(ctx, &s3svc.GetBucketEncryptionInput{Bucket: aws.String(name)})
	if err != nil || out.ServerSideEncryptionConfiguration == nil {
		return false
	}
	return len(out.ServerSideEncryptionConfiguration.Rules) > 0
}
