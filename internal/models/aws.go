package models

import "time"

// EC2Instance is the canonical EC2 instance shape used across the scanner.
// There is exactly one instance model; collectors in every package convert
// SDK output into this type.
type EC2Instance struct {
	InstanceID   string            `json:"instance_id"`
	ARN          string            `json:"arn"`
	Region       string            `json:"region"`
	InstanceType string            `json:"instance_type"`
	State        string            `json:"state"`
	LaunchTime   time.Time         `json:"launch_time"`
	PublicIP     string            `json:"public_ip,omitempty"`
	PublicDNS    string            `json:"public_dns,omitempty"`
	PrivateIP    string            `json:"private_ip,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
}

// SecurityGroup is an EC2 security group with its inbound rules.
type SecurityGroup struct {
	GroupID      string        `json:"group_id"`
	GroupName    string        `json:"group_name"`
	ARN          string        `json:"arn"`
	Region       string        `json:"region"`
	IngressRules []IngressRule `json:"ingress_rules"`
}

// IngressRule is a single inbound permission on a security group.
// FromPort/ToPort of 0 with Protocol "-1" means all traffic.
type IngressRule struct {
	Protocol string   `json:"protocol"`
	FromPort int32    `json:"from_port"`
	ToPort   int32    `json:"to_port"`
	CIDRs    []string `json:"cidrs"`
}

// EBSSnapshot is an EBS snapshot owned by the audited account.
// Public is populated in a second collection phase after all regions have
// completed their snapshot listing (the attribute lookup is keyed by the
// snapshot IDs gathered in the first pass).
type EBSSnapshot struct {
	SnapshotID string `json:"snapshot_id"`
	ARN        string `json:"arn"`
	Region     string `json:"region"`
	VolumeID   string `json:"volume_id"`
	Encrypted  bool   `json:"encrypted"`
	Public     bool   `json:"public"`
}

// S3Bucket is an S3 bucket with its public-access and encryption posture.
// S3 listing is global; Region records the bucket's location when known.
type S3Bucket struct {
	Name                     string `json:"name"`
	ARN                      string `json:"arn"`
	Region                   string `json:"region"`
	Public                   bool   `json:"public"`
	DefaultEncryptionEnabled bool   `json:"default_encryption_enabled"`
}

// IAMUser is an IAM user with console/MFA posture.
type IAMUser struct {
	UserName        string `json:"user_name"`
	ARN             string `json:"arn"`
	MFAEnabled      bool   `json:"mfa_enabled"`
	HasLoginProfile bool   `json:"has_login_profile"`
}

// RootAccountInfo summarises the root account's credential posture.
// DataAvailable distinguishes "collection failed" from "actually disabled"
// so checks never emit FAIL findings from a zero value.
type RootAccountInfo struct {
	HasAccessKeys bool `json:"has_access_keys"`
	MFAEnabled    bool `json:"mfa_enabled"`
	DataAvailable bool `json:"data_available"`
}

// CloudTrailStatus records account-level trail configuration.
type CloudTrailStatus struct {
	HasMultiRegionTrail bool `json:"has_multi_region_trail"`
	DataAvailable       bool `json:"data_available"`
}

// GuardDutyStatus records GuardDuty detector state for one region.
type GuardDutyStatus struct {
	Region        string `json:"region"`
	Enabled       bool   `json:"enabled"`
	DataAvailable bool   `json:"data_available"`
}

// ConfigRecorderStatus records AWS Config recorder state for one region.
type ConfigRecorderStatus struct {
	Region        string `json:"region"`
	Recording     bool   `json:"recording"`
	DataAvailable bool   `json:"data_available"`
}

// RDSInstance is an RDS database instance.
type RDSInstance struct {
	DBInstanceID     string `json:"db_instance_id"`
	ARN              string `json:"arn"`
	Region           string `json:"region"`
	Engine           string `json:"engine"`
	StorageEncrypted bool   `json:"storage_encrypted"`
	PubliclyAccessible bool `json:"publicly_accessible"`
}

// EKSCluster is an EKS cluster's endpoint access configuration.
type EKSCluster struct {
	Name                 string `json:"name"`
	ARN                  string `json:"arn"`
	Region               string `json:"region"`
	EndpointPublicAccess bool   `json:"endpoint_public_access"`
	PublicAccessOpen     bool   `json:"public_access_open"` // public CIDRs include 0.0.0.0/0
}

// LoadBalancerListener is one listener on an ELBv2 load balancer.
type LoadBalancerListener struct {
	LoadBalancerARN  string `json:"load_balancer_arn"`
	LoadBalancerName string `json:"load_balancer_name"`
	Region           string `json:"region"`
	Protocol         string `json:"protocol"`
	Port             int32  `json:"port"`
}

// MetricAlarm is a CloudWatch metric alarm relevant to monitoring checks.
type MetricAlarm struct {
	Name       string `json:"name"`
	Region     string `json:"region"`
	MetricName string `json:"metric_name"`
	Namespace  string `json:"namespace"`
}

// AWSInventory is the full resource inventory for one scan of one account.
// It is populated by the inventory collector, published read-only to the
// check runner, and discarded at the end of the run. Slices preserve the
// page order of the SDK calls that produced them within each region.
type AWSInventory struct {
	Instances       []EC2Instance          `json:"instances"`
	SecurityGroups  []SecurityGroup        `json:"security_groups"`
	Snapshots       []EBSSnapshot          `json:"snapshots"`
	Buckets         []S3Bucket             `json:"buckets"`
	IAMUsers        []IAMUser              `json:"iam_users"`
	Root            RootAccountInfo        `json:"root"`
	CloudTrail      CloudTrailStatus       `json:"cloudtrail"`
	GuardDuty       []GuardDutyStatus      `json:"guardduty"`
	ConfigRecorders []ConfigRecorderStatus `json:"config_recorders"`
	RDSInstances    []RDSInstance          `json:"rds_instances"`
	EKSClusters     []EKSCluster           `json:"eks_clusters"`
	Listeners       []LoadBalancerListener `json:"listeners"`
	MetricAlarms    []MetricAlarm          `json:"metric_alarms"`

	// RegionErrors records per-region collection failures. A region present
	// here contributed partial or no data; the scan itself continues.
	RegionErrors map[string]error `json:"-"`
}
