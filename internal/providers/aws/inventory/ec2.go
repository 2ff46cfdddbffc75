package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
	"github.com/deepak-negi-devops/cloudvet/internal/providers/aws/common"
)

// collectEC2Instances pages through all EC2 instances in region and converts
// them to internal models. Terminated instances are skipped; their security
// posture is no longer actionable.
func collectEC2Instances(
	ctx context.Context,
	client ec2APIClient,
	profile *common.ProfileConfig,
	region string,
) ([]models.EC2Instance, error) {
	paginator := ec2svc.NewDescribeInstancesPaginator(client, &ec2svc.DescribeInstancesInput{})

	var instances []models.EC2Instance
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeInstances page: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				if inst.State != nil && inst.State.Name == ec2types.InstanceStateNameTerminated {
					continue
				}
				instances = append(instances, toEC2Instance(inst, profile, region))
			}
		}
	}
	return instances, nil
}

// toEC2Instance converts an SDK EC2 instance to the internal model.
func toEC2Instance(inst ec2types.Instance, profile *common.ProfileConfig, region string) models.EC2Instance {
	var state string
	if inst.State != nil {
		state = string(inst.State.Name)
	}

	var launchTime time.Time
	if inst.LaunchTime != nil {
		launchTime = *inst.LaunchTime
	}

	id := aws.ToString(inst.InstanceId)
	return models.EC2Instance{
		InstanceID:   id,
		ARN:          ec2ARN(profile, region, "instance", id),
		Region:       region,
		InstanceType: string(inst.InstanceType),
		State:        state,
		LaunchTime:   launchTime,
		PublicIP:     aws.ToString(inst.PublicIpAddress),
		PublicDNS:    aws.ToString(inst.PublicDnsName),
		PrivateIP:    aws.ToString(inst.PrivateIpAddress),
		Tags:         tagsFromEC2(inst.Tags),
	}
}

// collectSecurityGroups pages through all security groups in region with
// their inbound rules.
func collectSecurityGroups(
	ctx context.Context,
	client ec2APIClient,
	profile *common.ProfileConfig,
	region string,
) ([]models.SecurityGroup, error) {
	paginator := ec2svc.NewDescribeSecurityGroupsPaginator(client, &ec2svc.DescribeSecurityGroupsInput{})

	var groups []models.SecurityGroup
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeSecurityGroups page: %w", err)
		}
		for _, sg := range page.SecurityGroups {
			id := aws.ToString(sg.GroupId)
			groups = append(groups, models.SecurityGroup{
				GroupID:      id,
				GroupName:    aws.ToString(sg.GroupName),
				ARN:          ec2ARN(profile, region, "security-group", id),
				Region:       region,
				IngressRules: toIngressRules(sg.IpPermissions),
			})
		}
	}
	return groups, nil
}

// toIngressRules flattens SDK IP permissions into inbound rules. Both IPv4
// and IPv6 ranges are kept; a permission with no ranges yields a rule with an
// empty CIDR list (peered-group-only rules).
func toIngressRules(perms []ec2types.IpPermission) []models.IngressRule {
	rules := make([]models.IngressRule, 0, len(perms))
	for _, p := range perms {
		rule := models.IngressRule{
			Protocol: aws.ToString(p.IpProtocol),
			FromPort: aws.ToInt32(p.FromPort),
			ToPort:   aws.ToInt32(p.ToPort),
		}
		for _, r := range p.IpRanges {
			if r.CidrIp != nil {
				rule.CIDRs = append(rule.CIDRs, *r.CidrIp)
			}
		}
		for _, r := range p.Ipv6Ranges {
			if r.CidrIpv6 != nil {
				rule.CIDRs = append(rule.CIDRs, *r.CidrIpv6)
			}
		}
		rules = append(rules, rule)
	}
	return rules
}

// collectSnapshots pages through the EBS snapshots owned by the audited
// account in region. Public is left at its zero value here; the collector
// resolves it in a second phase once every region's listing has completed.
func collectSnapshots(
	ctx context.Context,
	client ec2APIClient,
	profile *common.ProfileConfig,
	region string,
) ([]models.EBSSnapshot, error) {
	paginator := ec2svc.NewDescribeSnapshotsPaginator(client, &ec2svc.DescribeSnapshotsInput{
		OwnerIds: []string{profile.AccountID},
	})

	var snapshots []models.EBSSnapshot
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeSnapshots page: %w", err)
		}
		for _, snap := range page.Snapshots {
			id := aws.ToString(snap.SnapshotId)
			snapshots = append(snapshots, models.EBSSnapshot{
				SnapshotID: id,
				ARN:        ec2ARN(profile, region, "snapshot", id),
				Region:     region,
				VolumeID:   aws.ToString(snap.VolumeId),
				Encrypted:  aws.ToBool(snap.Encrypted),
			})
		}
	}
	return snapshots, nil
}

// snapshotIsPublic reports whether snapshotID's createVolumePermission grants
// the "all" group, which makes the snapshot publicly restorable.
func snapshotIsPublic(ctx context.Context, client ec2APIClient, snapshotID string) (bool, error) {
	out, err := client.DescribeSnapshotAttribute(ctx, &ec2svc.DescribeSnapshotAttributeInput{
		Attribute:  ec2types.SnapshotAttributeNameCreateVolumePermission,
		SnapshotId: aws.String(snapshotID),
	})
	if err != nil {
		return false, fmt.Errorf("DescribeSnapshotAttribute %s: %w", snapshotID, err)
	}
	for _, perm := range out.CreateVolumePermissions {
		if perm.Group == ec2types.PermissionGroupAll {
			return true, nil
		}
	}
	return false, nil
}

// ec2ARN builds the ARN for an EC2-scoped resource.
func ec2ARN(profile *common.ProfileConfig, region, resource, id string) string {
	return fmt.Sprintf("arn:%s:ec2:%s:%s:%s/%s", profile.Partition, region, profile.AccountID, resource, id)
}

// tagsFromEC2 converts EC2 SDK tags to a plain string map.
func tagsFromEC2(tags []ec2types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		if t.Key != nil && t.Value != nil {
			m[*t.Key] = *t.Value
		}
	}
	return m
}
