// Package scan holds the per-run audit context: the identity of the account
// being scanned plus its organization metadata. A Context is constructed once
// at the start of a scan and is read-only for the remainder of the run; it may
// be shared freely across concurrent check executions.
package scan

import "time"

// Organization is optional organization metadata for the audited account.
// Providers that do not expose organization data leave it zero-valued.
type Organization struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ARN   string `json:"arn"`
	OrgID string `json:"org_id"`
}

// Context identifies the account under audit.
type Context struct {
	// Provider is the cloud provider identifier: "aws" or "kubernetes".
	Provider string `json:"provider"`

	// AccountID is the audited account, subscription, or project identity.
	// For Kubernetes scans it is the cluster context name.
	AccountID string `json:"account_id"`

	// Partition is the provider partition ("aws", "aws-cn", ...). Empty for
	// providers without partitions.
	Partition string `json:"partition"`

	// Profile is the credential profile used for the scan.
	Profile string `json:"profile"`

	// AssessmentTime is the single timestamp stamped on every finding of
	// this run. Fixed at construction so all findings of one scan agree.
	AssessmentTime time.Time `json:"assessment_time"`

	// Organization is populated when the provider exposes org metadata.
	Organization Organization `json:"organization"`
}

// NewContext returns a Context for the given provider and account with the
// assessment time fixed to now (UTC).
func NewContext(provider, accountID, partition, profile string) *Context {
	return &Context{
		Provider:       provider,
		AccountID:      accountID,
		Partition:      partition,
		Profile:        profile,
		AssessmentTime: time.Now().UTC(),
	}
}
