package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2svc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// collectLoadBalancerListeners pages through all ELBv2 load balancers in
// region and lists every listener on each, in load balancer page order.
func collectLoadBalancerListeners(ctx context.Context, client elbAPIClient, region string) ([]models.LoadBalancerListener, error) {
	paginator := elbv2svc.NewDescribeLoadBalancersPaginator(client, &elbv2svc.DescribeLoadBalancersInput{})

	var listeners []models.LoadBalancerListener
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeLoadBalancers page: %w", err)
		}
		for _, lb := range page.LoadBalancers {
			lbARN := aws.ToString(lb.LoadBalancerArn)
			lbName := aws.ToString(lb.LoadBalancerName)

			out, err := client.DescribeListeners(ctx, &elbv2svc.DescribeListenersInput{
				LoadBalancerArn: aws.String(lbARN),
			})
			if err != nil {
				return nil, fmt.Errorf("DescribeListeners %s: %w", lbName, err)
			}
			for _, l := range out.Listeners {
				listeners = append(listeners, models.LoadBalancerListener{
					LoadBalancerARN:  lbARN,
					LoadBalancerName: lbName,
					Region:           region,
					Protocol:         string(l.Protocol),
					Port:             aws.ToInt32(l.Port),
				})
			}
		}
	}
	return listeners, nil
}
