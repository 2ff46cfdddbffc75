// Package aws_security provides the AWS security audit check pack.
// It groups all AWS checks into a single New() function that the CLI wires
// into a checks.Registry before invoking the scan engine.
//
// Convention: every check pack lives in internal/checkpacks/<domain>/pack.go
// and exposes a single New() func returning []checks.Check.
// Future AWS checks should be added to the slice returned by New().
package aws_security

import "github.com/deepak-negi-devops/cloudvet/internal/checks"

// New returns the default AWS security audit check pack. The slice order is
// the registration order, which fixes the finding stream order for a scan.
func New() []checks.Check {
	return []checks.Check{
		checks.IAMRootAccessKeyCheck{},                  // CRITICAL: root access keys present
		checks.IAMRootMFACheck{},                        // CRITICAL: root account MFA not enabled
		checks.EC2EBSSnapshotPublicCheck{},              // CRITICAL: EBS snapshot shared with all accounts
		checks.S3BucketPublicAccessCheck{},              // CRITICAL: S3 bucket policy allows public access
		checks.CloudTrailMultiRegionCheck{},             // HIGH:     no multi-region CloudTrail trail
		checks.EC2SecurityGroupSQLIngressCheck{},        // HIGH:     security group exposes SQL ports to internet
		checks.GuardDutyEnabledCheck{},                  // HIGH:     GuardDuty not enabled in region
		checks.RDSNoPublicAccessCheck{},                 // HIGH:     RDS instance publicly accessible
		checks.EKSEndpointPublicCheck{},                 // HIGH:     EKS API endpoint open to internet
		checks.EC2InstancePublicIPCheck{},               // MEDIUM:   EC2 instance has a public IP
		checks.EC2EBSSnapshotEncryptedCheck{},           // MEDIUM:   EBS snapshot unencrypted
		checks.S3BucketDefaultEncryptionCheck{},         // MEDIUM:   S3 bucket lacks default encryption
		checks.IAMUserMFACheck{},                        // MEDIUM:   console user has no MFA device
		checks.ConfigRecorderEnabledCheck{},             // MEDIUM:   AWS Config not recording in region
		checks.RDSStorageEncryptedCheck{},               // MEDIUM:   RDS storage unencrypted
		checks.ELBv2InsecureListenersCheck{},            // MEDIUM:   load balancer listener without TLS
		checks.CloudWatchUnauthorizedAPIAlarmCheck{},    // MEDIUM:   no unauthorized API call alarm
	}
}
