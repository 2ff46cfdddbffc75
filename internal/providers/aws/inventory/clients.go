package inventory

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	cloudtrailsvc "github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	cwsvc "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	configsvc "github.com/aws/aws-sdk-go-v2/service/configservice"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ekssvc "github.com/aws/aws-sdk-go-v2/service/eks"
	elbv2svc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	guardduty "github.com/aws/aws-sdk-go-v2/service/guardduty"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
)

// ---------------------------------------------------------------------------
// Narrow per-service client interfaces
//
// Each interface covers only the operations the inventory collector uses.
// Embedding the SDK's generated *APIClient interfaces lets the SDK paginators
// consume our fakes directly in tests.
// ---------------------------------------------------------------------------

// ec2APIClient covers instance, security group, and snapshot collection,
// including the dependent snapshot-attribute lookup of the second phase.
type ec2APIClient interface {
	ec2svc.DescribeInstancesAPIClient
	ec2svc.DescribeSecurityGroupsAPIClient
	ec2svc.DescribeSnapshotsAPIClient
	DescribeSnapshotAttribute(ctx context.Context, params *ec2svc.DescribeSnapshotAttributeInput, optFns ...func(*ec2svc.Options)) (*ec2svc.DescribeSnapshotAttributeOutput, error)
}

// s3APIClient covers bucket listing and per-bucket posture lookups.
type s3APIClient interface {
	ListBuckets(ctx context.Context, params *s3svc.ListBucketsInput, optFns ...func(*s3svc.Options)) (*s3svc.ListBucketsOutput, error)
	GetBucketPolicyStatus(ctx context.Context, params *s3svc.GetBucketPolicyStatusInput, optFns ...func(*s3svc.Options)) (*s3svc.GetBucketPolicyStatusOutput, error)
	GetBucketEncryption(ctx context.Context, params *s3svc.GetBucketEncryptionInput, optFns ...func(*s3svc.Options)) (*s3svc.GetBucketEncryptionOutput, error)
	GetBucketLocation(ctx context.Context, params *s3svc.GetBucketLocationInput, optFns ...func(*s3svc.Options)) (*s3svc.GetBucketLocationOutput, error)
}

// iamAPIClient covers user and account-level credential posture.
type iamAPIClient interface {
	iamsvc.ListUsersAPIClient
	ListMFADevices(ctx context.Context, params *iamsvc.ListMFADevicesInput, optFns ...func(*iamsvc.Options)) (*iamsvc.ListMFADevicesOutput, error)
	GetLoginProfile(ctx context.Context, params *iamsvc.GetLoginProfileInput, optFns ...func(*iamsvc.Options)) (*iamsvc.GetLoginProfileOutput, error)
	GetAccountSummary(ctx context.Context, params *iamsvc.GetAccountSummaryInput, optFns ...func(*iamsvc.Options)) (*iamsvc.GetAccountSummaryOutput, error)
}

// cloudTrailAPIClient covers trail configuration.
type cloudTrailAPIClient interface {
	DescribeTrails(ctx context.Context, params *cloudtrailsvc.DescribeTrailsInput, optFns ...func(*cloudtrailsvc.Options)) (*cloudtrailsvc.DescribeTrailsOutput, error)
}

// guardDutyAPIClient covers detector status.
type guardDutyAPIClient interface {
	ListDetectors(ctx context.Context, params *guardduty.ListDetectorsInput, optFns ...func(*guardduty.Options)) (*guardduty.ListDetectorsOutput, error)
	GetDetector(ctx context.Context, params *guardduty.GetDetectorInput, optFns ...func(*guardduty.Options)) (*guardduty.GetDetectorOutput, error)
}

// awsConfigAPIClient covers Config recorder status.
type awsConfigAPIClient interface {
	DescribeConfigurationRecorderStatus(ctx context.Context, params *configsvc.DescribeConfigurationRecorderStatusInput, optFns ...func(*configsvc.Options)) (*configsvc.DescribeConfigurationRecorderStatusOutput, error)
}

// rdsAPIClient covers DB instance listing.
type rdsAPIClient interface {
	rdssvc.DescribeDBInstancesAPIClient
}

// eksAPIClient covers cluster listing and the dependent endpoint lookup.
type eksAPIClient interface {
	ekssvc.ListClustersAPIClient
	DescribeCluster(ctx context.Context, params *ekssvc.DescribeClusterInput, optFns ...func(*ekssvc.Options)) (*ekssvc.DescribeClusterOutput, error)
}

// elbAPIClient covers load balancer and listener listing.
type elbAPIClient interface {
	elbv2svc.DescribeLoadBalancersAPIClient
	DescribeListeners(ctx context.Context, params *elbv2svc.DescribeListenersInput, optFns ...func(*elbv2svc.Options)) (*elbv2svc.DescribeListenersOutput, error)
}

// cloudWatchAPIClient covers metric alarm listing.
type cloudWatchAPIClient interface {
	cwsvc.DescribeAlarmsAPIClient
}

// invClients bundles the service clients used for one region's collection.
type invClients struct {
	EC2        ec2APIClient
	S3         s3APIClient
	IAM        iamAPIClient
	CloudTrail cloudTrailAPIClient
	GuardDuty  guardDutyAPIClient
	Config     awsConfigAPIClient
	RDS        rdsAPIClient
	EKS        eksAPIClient
	ELB        elbAPIClient
	CloudWatch cloudWatchAPIClient
}

// invClientFactory creates invClients from an AWS config.
// Injection point: tests replace this with a function returning fake clients.
type invClientFactory func(cfg aws.Config) *invClients

// newDefaultInvClients creates production AWS SDK clients from cfg.
func newDefaultInvClients(cfg aws.Config) *invClients {
	return &invClients{
		EC2:        ec2svc.NewFromConfig(cfg),
		S3:         s3svc.NewFromConfig(cfg),
		IAM:        iamsvc.NewFromConfig(cfg),
		CloudTrail: cloudtrailsvc.NewFromConfig(cfg),
		GuardDuty:  guardduty.NewFromConfig(cfg),
		Config:     configsvc.NewFromConfig(cfg),
		RDS:        rdssvc.NewFromConfig(cfg),
		EKS:        ekssvc.NewFromConfig(cfg),
		ELB:        elbv2svc.NewFromConfig(cfg),
		CloudWatch: cwsvc.NewFromConfig(cfg),
	}
}
