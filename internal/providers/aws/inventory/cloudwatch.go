package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwsvc "github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// collectMetricAlarms pages through all CloudWatch metric alarms in region.
// Monitoring checks match on the collected metric name and namespace.
func collectMetricAlarms(ctx context.Context, client cloudWatchAPIClient, region string) ([]models.MetricAlarm, error) {
	paginator := cwsvc.NewDescribeAlarmsPaginator(client, &cwsvc.DescribeAlarmsInput{})

	var alarms []models.MetricAlarm
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeAlarms page: %w", err)
		}
		for _, a := range page.MetricAlarms {
			alarms = append(alarms, models.MetricAlarm{
				Name:       aws.ToString(a.AlarmName),
				Region:     region,
				MetricName: aws.ToString(a.MetricName),
				Namespace:  aws.ToString(a.Namespace),
			})
		}
	}
	return alarms, nil
}
