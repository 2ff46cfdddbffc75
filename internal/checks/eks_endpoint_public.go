package checks

import "fmt"

// EKSEndpointPublicCheck flags EKS clusters whose API endpoint is reachable
// from the whole internet. Clusters with public access restricted to named
// CIDRs pass with a distinct message.
type EKSEndpointPublicCheck struct{}

func (EKSEndpointPublicCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "eks_endpoints_not_publicly_accessible",
		CheckTitle:         "Ensure EKS cluster endpoints are not publicly accessible",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards"},
		ServiceName:        "eks",
		ResourceIDTemplate: "arn:partition:eks:region:account-id:cluster/cluster-name",
		Severity:           SeverityHigh,
		ResourceType:       "AwsEksCluster",
		Description:        "Ensure EKS cluster API server endpoints are not open to 0.0.0.0/0.",
		Risk:               "A cluster API endpoint open to the internet can be probed and brute-forced by anyone.",
		RelatedURL:         "https://docs.aws.amazon.com/eks/latest/userguide/cluster-endpoint.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws eks update-cluster-config --name <cluster-name> --resources-vpc-config endpointPublicAccess=false,endpointPrivateAccess=true",
			},
			Recommendation: RemediationRecommendation{
				Text: "Enable private endpoint access and restrict or disable public access.",
				URL:  "https://docs.aws.amazon.com/eks/latest/userguide/cluster-endpoint.html",
			},
		},
		Categories: []string{"internet-exposed"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1190"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1190.000"}},
				},
			},
		},
	}
}

func (c EKSEndpointPublicCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, cluster := range in.AWS.EKSClusters {
		d := Draft{
			ResourceID:  cluster.Name,
			ResourceARN: cluster.ARN,
			Region:      cluster.Region,
		}
		switch {
		case !cluster.EndpointPublicAccess:
			d.Status = StatusPass
			d.StatusExtended = fmt.Sprintf("EKS cluster %s does not have public endpoint access.", cluster.Name)
		case !cluster.PublicAccessOpen:
			d.Status = StatusPass
			d.StatusExtended = fmt.Sprintf("EKS cluster %s has public endpoint access restricted to specific CIDR ranges.", cluster.Name)
		default:
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("EKS cluster %s has its API endpoint open to 0.0.0.0/0.", cluster.Name)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
