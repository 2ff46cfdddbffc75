package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cloudtrailsvc "github.com/aws/aws-sdk-go-v2/service/cloudtrail"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// collectCloudTrailStatus reads the account's trail configuration, including
// shadow trails from other regions, and reports whether at least one
// multi-region trail exists.
func collectCloudTrailStatus(ctx context.Context, client cloudTrailAPIClient) (models.CloudTrailStatus, error) {
	out, err := client.DescribeTrails(ctx, &cloudtrailsvc.DescribeTrailsInput{
		IncludeShadowTrails: aws.Bool(true),
	})
	if err != nil {
		return models.CloudTrailStatus{}, fmt.Errorf("DescribeTrails: %w", err)
	}

	status := models.CloudTrailStatus{DataAvailable: true}
	for _, trail := range out.TrailList {
		if aws.ToBool(trail.IsMultiRegionTrail) {
			status.HasMultiRegionTrail = true
			break
		}
	}
	return status, nil
}
