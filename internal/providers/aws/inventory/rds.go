package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// collectRDSInstances pages through all RDS database instances in region.
func collectRDSInstances(ctx context.Context, client rdsAPIClient, region string) ([]models.RDSInstance, error) {
	paginator := rdssvc.NewDescribeDBInstancesPaginator(client, &rdssvc.DescribeDBInstancesInput{})

	var instances []models.RDSInstance
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeDBInstances page: %w", err)
		}
		for _, db := range page.DBInstances {
			instances = append(instances, models.RDSInstance{
				DBInstanceID:       aws.ToString(db.DBInstanceIdentifier),
				ARN:                aws.ToString(db.DBInstanceArn),
				Region:             region,
				Engine:             aws.ToString(db.Engine),
				StorageEncrypted:   aws.ToBool(db.StorageEncrypted),
				PubliclyAccessible: aws.ToBool(db.PubliclyAccessible),
			})
		}
	}
	return instances, nil
}
