package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ekssvc "github.com/aws/aws-sdk-go-v2/service/eks"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// collectEKSClusters pages through all EKS clusters in region and resolves
// each cluster's API endpoint access configuration.
func collectEKSClusters(ctx context.Context, client eksAPIClient, region string) ([]models.EKSCluster, error) {
	paginator := ekssvc.NewListClustersPaginator(client, &ekssvc.ListClustersInput{})

	var clusters []models.EKSCluster
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ListClusters page: %w", err)
		}
		for _, name := range page.Clusters {
			out, err := client.DescribeCluster(ctx, &ekssvc.DescribeClusterInput{Name: aws.String(name)})
			if err != nil {
				return nil, fmt.Errorf("DescribeCluster %s: %w", name, err)
			}
			if out.Cluster == nil {
				continue
			}

			cluster := models.EKSCluster{
				Name:   name,
				ARN:    aws.ToString(out.Cluster.Arn),
				Region: region,
			}
			if vpc := out.Cluster.ResourcesVpcConfig; vpc != nil {
				cluster.EndpointPublicAccess = vpc.EndpointPublicAccess
				for _, cidr := range vpc.PublicAccessCidrs {
					if cidr == "0.0.0.0/0" {
						cluster.PublicAccessOpen = true
						break
					}
				}
			}
			clusters = append(clusters, cluster)
		}
	}
	return clusters, nil
}
