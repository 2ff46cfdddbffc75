package checks

import "fmt"

// EC2InstancePublicIPCheck flags EC2 instances that carry a public IPv4
// address. One draft is emitted per instance.
type EC2InstancePublicIPCheck struct{}

func (EC2InstancePublicIPCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "ec2_instance_public_ip",
		CheckTitle:         "Check for EC2 Instances with Public IP",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards"},
		ServiceName:        "ec2",
		ResourceIDTemplate: "arn:partition:ec2:region:account-id:instance/instance-id",
		Severity:           SeverityMedium,
		ResourceType:       "AwsEc2Instance",
		Description:        "Check for EC2 Instances with a public IP address.",
		Risk:               "Exposing an EC2 instance directly to the internet increases the attack surface and the risk of unauthorized access.",
		RelatedURL:         "https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/using-instance-addressing.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws ec2 modify-instance-attribute --instance-id <instance-id> --no-associate-public-ip-address",
			},
			Recommendation: RemediationRecommendation{
				Text: "Place instances behind a load balancer or NAT gateway and disable public IP auto-assignment on the subnet.",
				URL:  "https://docs.aws.amazon.com/vpc/latest/userguide/vpc-ip-addressing.html",
			},
		},
		Categories: []string{"internet-exposed"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1580"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1580.000"}},
				},
			},
		},
	}
}

func (c EC2InstancePublicIPCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, inst := range in.AWS.Instances {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("EC2 Instance %s does not have a Public IP.", inst.InstanceID),
			ResourceID:     inst.InstanceID,
			ResourceARN:    inst.ARN,
			ResourceTags:   inst.Tags,
			Region:         inst.Region,
		}
		if inst.PublicIP != "" {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("EC2 Instance %s has a Public IP: %s (%s).", inst.InstanceID, inst.PublicIP, inst.PublicDNS)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
