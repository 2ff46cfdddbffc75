package checks

import "fmt"

// sqlPorts are the well-known database ports evaluated by the SQL ingress
// check, covering MSSQL, Oracle, MySQL/MariaDB, PostgreSQL, and MongoDB.
var sqlPorts = []int32{1433, 1521, 3306, 5432, 27017}

// internetCIDRs match an ingress rule open to the whole internet.
const (
	anyIPv4 = "0.0.0.0/0"
	anyIPv6 = "::/0"
)

// EC2SecurityGroupSQLIngressCheck flags security groups that allow inbound
// internet traffic to a database port. Each group yields exactly one draft:
// PASS by default, flipped to FAIL by the first offending rule/port pair.
// Later matches within the same group never add drafts or change the message.
type EC2SecurityGroupSQLIngressCheck struct{}

func (EC2SecurityGroupSQLIngressCheck) Metadata() Metadata {
	return Metadata{
		Provider:           "aws",
		CheckID:            "ec2_securitygroup_allow_ingress_from_internet_to_tcp_port_sql",
		CheckTitle:         "Ensure no security groups allow ingress from 0.0.0.0/0 to SQL ports",
		CheckType:          []string{"Software and Configuration Checks", "Industry and Regulatory Standards", "CIS AWS Foundations Benchmark"},
		ServiceName:        "ec2",
		ResourceIDTemplate: "arn:partition:ec2:region:account-id:security-group/security-group-id",
		Severity:           SeverityHigh,
		ResourceType:       "AwsEc2SecurityGroup",
		Description:        "Ensure no security groups allow ingress from 0.0.0.0/0 or ::/0 to SQL ports.",
		Risk:               "A database port reachable from the internet exposes the database to brute-force and exploitation attempts.",
		RelatedURL:         "https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/ec2-security-groups.html",
		Remediation: Remediation{
			Code: RemediationCode{
				CLI: "aws ec2 revoke-security-group-ingress --group-id <group-id> --protocol tcp --port <port> --cidr 0.0.0.0/0",
			},
			Recommendation: RemediationRecommendation{
				Text: "Restrict database ports to known application security groups or CIDR ranges.",
				URL:  "https://docs.aws.amazon.com/vpc/latest/userguide/vpc-security-best-practices.html",
			},
		},
		Categories: []string{"internet-exposed"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-AWS-1.5",
				Requirements: []string{"5.2"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Networking"}},
				},
			},
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

func (c EC2SecurityGroupSQLIngressCheck) Execute(in Inputs) []Draft {
	if in.AWS == nil {
		return nil
	}
	var drafts []Draft
	for _, sg := range in.AWS.SecurityGroups {
		d := Draft{
			Status: StatusPass,
			StatusExtended: fmt.Sprintf("Security group %s (%s) does not have SQL ports open to the Internet.",
				sg.GroupName, sg.GroupID),
			ResourceID:  sg.GroupID,
			ResourceARN: sg.ARN,
			Region:      sg.Region,
		}

	RULES:
		for _, rule := range sg.IngressRules {
			if !ruleOpenToInternet(rule.CIDRs) {
				continue
			}
			for _, port := range sqlPorts {
				if !rulePermitsPort(rule.Protocol, rule.FromPort, rule.ToPort, port) {
					continue
				}
				d.Status = StatusFail
				d.StatusExtended = fmt.Sprintf("Security group %s (%s) has SQL port %d open to the Internet.",
					sg.GroupName, sg.GroupID, port)
				break RULES
			}
		}

		drafts = append(drafts, d)
	}
	return drafts
}

// ruleOpenToInternet reports whether any of the rule's source ranges cover
// the whole internet.
func ruleOpenToInternet(cidrs []string) bool {
	for _, cidr := range cidrs {
		if cidr == anyIPv4 || cidr == anyIPv6 {
			return true
		}
	}
	return false
}

// rulePermitsPort reports whether a rule's protocol and port range admit
// traffic on port. Protocol "-1" means all traffic on all ports.
func rulePermitsPort(protocol string, from, to, port int32) bool {
	if protocol == "-1" {
		return true
	}
	if protocol != "tcp" {
		return false
	}
	return from <= port && port <= to
}
