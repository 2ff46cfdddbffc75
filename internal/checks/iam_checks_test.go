package checks

import (
	"testing"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// TestRootAccessKey_NoDataEmitsNothing verifies that an unreadable root
// posture produces no drafts instead of a false PASS or FAIL.
func TestRootAccessKey_NoDataEmitsNothing(t *testing.T) {
	in := Inputs{AWS: &models.AWSInventory{Root: models.RootAccountInfo{DataAvailable: false}}}
	if drafts := (IAMRootAccessKeyCheck{}).Execute(in); len(drafts) != 0 {
		t.Errorf("drafts = %v; want none when root posture is unavailable", drafts)
	}
	if drafts := (IAMRootMFACheck{}).Execute(in); len(drafts) != 0 {
		t.Errorf("drafts = %v; want none when root posture is unavailable", drafts)
	}
}

// TestRootAccessKey_FailWhenPresent verifies the FAIL draft for active root
// access keys.
func TestRootAccessKey_FailWhenPresent(t *testing.T) {
	in := Inputs{AWS: &models.AWSInventory{Root: models.RootAccountInfo{
		HasAccessKeys: true,
		DataAvailable: true,
	}}}

	drafts := IAMRootAccessKeyCheck{}.Execute(in)
	if len(drafts) != 1 {
		t.Fatalf("drafts count = %d; want 1", len(drafts))
	}
	if drafts[0].Status != StatusFail {
		t.Errorf("Status = %s; want FAIL", drafts[0].Status)
	}
}

// TestRootMFA_PassWhenEnabled verifies the PASS draft for root MFA.
func TestRootMFA_PassWhenEnabled(t *testing.T) {
	in := Inputs{AWS: &models.AWSInventory{Root: models.RootAccountInfo{
		MFAEnabled:    true,
		DataAvailable: true,
	}}}

	drafts := IAMRootMFACheck{}.Execute(in)
	if len(drafts) != 1 || drafts[0].Status != StatusPass {
		t.Errorf("drafts = %+v; want single PASS", drafts)
	}
}

// TestUserMFA_StatusPerPosture verifies the three user postures: no console
// access, console with MFA, console without MFA.
func TestUserMFA_StatusPerPosture(t *testing.T) {
	in := Inputs{AWS: &models.AWSInventory{IAMUsers: []models.IAMUser{
		{UserName: "api-only", HasLoginProfile: false},
		{UserName: "secured", HasLoginProfile: true, MFAEnabled: true},
		{UserName: "exposed", HasLoginProfile: true, MFAEnabled: false},
	}}}

	drafts := IAMUserMFACheck{}.Execute(in)
	if len(drafts) != 3 {
		t.Fatalf("drafts count = %d; want 3", len(drafts))
	}
	want := []Status{StatusPass, StatusPass, StatusFail}
	for i, d := range drafts {
		if d.Status != want[i] {
			t.Errorf("draft %d (%s): Status = %s; want %s", i, d.ResourceID, d.Status, want[i])
		}
	}
}

// TestCheckMetadataValidates ensures every registered descriptor in the
// package passes validation.
func TestCheckMetadataValidates(t *testing.T) {
	all := []Check{
		EC2InstancePublicIPCheck{},
		EC2SecurityGroupSQLIngressCheck{},
		EC2EBSSnapshotPublicCheck{},
		EC2EBSSnapshotEncryptedCheck{},
		S3BucketPublicAccessCheck{},
		S3BucketDefaultEncryptionCheck{},
		IAMUserMFACheck{},
		IAMRootAccessKeyCheck{},
		IAMRootMFACheck{},
		CloudTrailMultiRegionCheck{},
		GuardDutyEnabledCheck{},
		ConfigRecorderEnabledCheck{},
		RDSStorageEncryptedCheck{},
		RDSNoPublicAccessCheck{},
		EKSEndpointPublicCheck{},
		ELBv2InsecureListenersCheck{},
		CloudWatchUnauthorizedAPIAlarmCheck{},
		K8sPrivilegedContainersCheck{},
		K8sAutomountTokenCheck{},
		K8sHostNetworkCheck{},
	}
	for _, c := range all {
		if err := c.Metadata().Validate(); err != nil {
			t.Errorf("metadata for %s: %v", c.Metadata().CheckID, err)
		}
	}
}
