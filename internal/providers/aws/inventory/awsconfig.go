package inventory

import (
	"context"
	"fmt"

	configsvc "github.com/aws/aws-sdk-go-v2/service/configservice"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// collectConfigRecorderStatus reports whether AWS Config has a recording
// configuration recorder in region. A region without any recorder is reported
// as not recording, not as a collection failure.
func collectConfigRecorderStatus(ctx context.Context, client awsConfigAPIClient, region string) (*models.ConfigRecorderStatus, error) {
	out, err := client.DescribeConfigurationRecorderStatus(ctx, &configsvc.DescribeConfigurationRecorderStatusInput{})
	if err != nil {
		return nil, fmt.Errorf("DescribeConfigurationRecorderStatus: %w", err)
	}

	status := &models.ConfigRecorderStatus{Region: region, DataAvailable: true}
	for _, recorder := range out.ConfigurationRecordersStatus {
		if recorder.Recording {
			status.Recording = true
			break
		}
	}
	return status, nil
}
