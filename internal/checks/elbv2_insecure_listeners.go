package checks

import "fmt"

// ELBv2InsecureListenersCheck flags load balancer listeners that accept
// cleartext traffic. One draft is emitted per listener.
type ELBv2InsecureListenersCheck struct{}

func (ELBv2InsecureListenersCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "elbv2_insecure_listeners",
		CheckTitle:         "Check if ELBv2 has listeners with insecure protocols",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards"},
		ServiceName:        "elbv2",
		ResourceIDTemplate: "arn:partition:elasticloadbalancing:region:account-id:loadbalancer/load-balancer-name",
		Severity:           SeverityMedium,
		ResourceType:       "AwsElbv2LoadBalancer",
		Description:        "Check if ELBv2 load balancers have listeners using HTTP or plain TCP instead of TLS.",
		Risk:               "Cleartext listeners expose credentials and session data to network interception.",
		RelatedURL:         "https://docs.aws.amazon.com/elasticloadbalancing/latest/application/create-https-listener.html",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Use HTTPS or TLS listeners with certificates from ACM; redirect HTTP to HTTPS.",
				URL:  "https://docs.aws.amazon.com/elasticloadbalancing/latest/application/listener-update-certificates.html",
			},
		},
		Categories: []string{"encryption"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1557"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1557.000"}},
				},
			},
		},
	}
}

func (c ELBv2InsecureListenersCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, l := range in.AWS.Listeners {
		d := Draft{
			Status: StatusPass,
			StatusExtended: fmt.Sprintf("Load balancer %s listener on port %d uses secure protocol %s.",
				l.LoadBalancerName, l.Port, l.Protocol),
			ResourceID:  l.LoadBalancerName,
			ResourceARN: l.LoadBalancerARN,
			Region:      l.Region,
		}
		if l.Protocol == "HTTP" || l.Protocol == "TCP" {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("Load balancer %s has an insecure %s listener on port %d.",
				l.LoadBalancerName, l.Protocol, l.Port)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
