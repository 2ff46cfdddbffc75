package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	guarddutysvc "github.com/aws/aws-sdk-go-v2/service/guardduty"
	gdtypes "github.com/aws/aws-sdk-go-v2/service/guardduty/types"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// collectGuardDutyStatus reports whether GuardDuty has an enabled detector in
// region. An account without any detector is reported as disabled, not as a
// collection failure.
func collectGuardDutyStatus(ctx context.Context, client guardDutyAPIClient, region string) (*models.GuardDutyStatus, error) {
	detectors, err := client.ListDetectors(ctx, &guarddutysvc.ListDetectorsInput{})
	if err != nil {
		return nil, fmt.Errorf("ListDetectors: %w", err)
	}

	status := &models.GuardDutyStatus{Region: region, DataAvailable: true}
	for _, id := range detectors.DetectorIds {
		det, err := client.GetDetector(ctx, &guarddutysvc.GetDetectorInput{DetectorId: aws.String(id)})
		if err != nil {
			return nil, fmt.Errorf("GetDetector %s: %w", id, err)
		}
		if det.Status == gdtypes.DetectorStatusEnabled {
			status.Enabled = true
			break
		}
	}
	return status, nil
}
