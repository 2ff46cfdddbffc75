// Package kubernetes provides the Kubernetes security audit check pack.
package kubernetes

import "github.com/deepak-negi-devops/cloudvet/internal/checks"

// New returns the default Kubernetes security audit check pack.
func New() []checks.Check {
	return []checks.Check{
		checks.K8sPrivilegedContainersCheck{}, // HIGH:   pod runs a privileged container
		checks.K8sAutomountTokenCheck{},       // HIGH:   service account automounts its API token
		checks.K8sHostNetworkCheck{},          // MEDIUM: pod shares the host network namespace
	}
}
