package checks

import "fmt"

// K8sPrivilegedContainersCheck flags pods running privileged containers.
// Each pod yields one draft; the first privileged container fails the pod.
type K8sPrivilegedContainersCheck struct{}

func (K8sPrivilegedContainersCheck) Metadata() Metadata {
	return Metadata{
		Provider:     "kubernetes",
		CheckID:      "core_minimize_privileged_containers",
		CheckTitle:   "Minimize the admission of privileged containers",
		CheckType:    []string{"Software and Configuration Checks"},
		ServiceName:  "core",
		Severity:     SeverityHigh,
		ResourceType: "Pod",
		Description:  "Minimize the admission of containers running with securityContext.privileged set to true.",
		Risk:         "A privileged container has full access to the host's devices and kernel, defeating container isolation.",
		RelatedURL:   "https://kubernetes.io/docs/concepts/security/pod-security-standards/",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Remove privileged: true from container security contexts and enforce the restricted Pod Security Standard.",
				URL:  "https://kubernetes.io/docs/concepts/security/pod-security-admission/",
			},
		},
		Categories: []string{"cluster-security"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-Kubernetes-1.8",
				Requirements: []string{"5.2.1"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Policies", "Pod Security Standards"}},
				},
			},
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1611"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1611.000"}},
				},
			},
		},
	}
}

func (c K8sPrivilegedContainersCheck) Execute(in Inputs) []Draft {
	if in.Cluster == nil {
		return nil
	}
	var drafts []Draft
	for _, pod := range in.Cluster.Pods {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("Pod %s does not run privileged containers.", pod.Name),
			ResourceID:     pod.Name,
			Region:         pod.Namespace,
		}
		for _, container := range pod.Containers {
			if container.Privileged {
				d.Status = StatusFail
				d.StatusExtended = fmt.Sprintf("Pod %s runs privileged container %s.", pod.Name, container.Name)
				break
			}
		}
		drafts = append(drafts, d)
	}
	return drafts
}
