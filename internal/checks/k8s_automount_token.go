package checks

import "fmt"

// K8sAutomountTokenCheck flags service accounts that automount their API
// token. Workloads that never call the API server should not carry one.
type K8sAutomountTokenCheck struct{}

func (K8sAutomountTokenCheck) Metadata() Metadata {
	return Metadata{
		Provider:     "kubernetes",
		CheckID:      "core_minimize_automount_service_account_token",
		CheckTitle:   "Ensure that Service Account Tokens are only mounted where necessary",
		CheckType:    []string{"Software and Configuration Checks"},
		ServiceName:  "core",
		Severity:     SeverityHigh,
		ResourceType: "ServiceAccount",
		Description:  "Ensure automountServiceAccountToken is disabled on service accounts that do not need API access.",
		Risk:         "A mounted token lets any process in a compromised pod authenticate to the API server as the service account.",
		RelatedURL:   "https://kubernetes.io/docs/tasks/configure-pod-container/configure-service-account/",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Set automountServiceAccountToken: false on service accounts and pod specs that do not use the Kubernetes API.",
				URL:  "https://kubernetes.io/docs/tasks/configure-pod-container/configure-service-account/#opt-out-of-api-credential-automounting",
			},
		},
		Categories: []string{"cluster-security"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-Kubernetes-1.8",
				Requirements: []string{"5.1.6"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Policies", "RBAC and Service Accounts"}},
				},
			},
			{
				Framework:    "MITRE-ATTACK",
				Requirements: []string{"T1528"},
				Attributes: []ComplianceAttribute{
					{Key: "Subtechniques", Values: []string{"T1528.000"}},
				},
			},
		},
	}
}

func (c K8sAutomountTokenCheck) Execute(in Inputs) []Draft {
	if in.Cluster == nil {
		return nil
	}
	var drafts []Draft
	for _, sa := range in.Cluster.ServiceAccounts {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("Service account %s does not automount its API token.", sa.Name),
			ResourceID:     sa.Name,
			Region:         sa.Namespace,
		}
		if sa.AutomountServiceAccountToken {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("Service account %s automounts its API token.", sa.Name)
		}
		drafts = append(drafts, d)
	}
	return drafts
}

// K8sHostNetworkCheck flags pods sharing the host network namespace.
type K8sHostNetworkCheck struct{}

func (K8sHostNetworkCheck) Metadata() Metadata {
	return Metadata{
		Provider:     "kubernetes",
		CheckID:      "core_minimize_host_network_pods",
		CheckTitle:   "Minimize the admission of containers wishing to share the host network namespace",
		CheckType:    []string{"Software and Configuration Checks"},
		ServiceName:  "core",
		Severity:     SeverityMedium,
		ResourceType: "Pod",
		Description:  "Minimize the admission of pods with spec.hostNetwork set to true.",
		Risk:         "A pod on the host network can sniff and spoof traffic of every other workload on the node.",
		RelatedURL:   "https://kubernetes.io/docs/concepts/security/pod-security-standards/",
		Remediation: Remediation{
			Recommendation: RemediationRecommendation{
				Text: "Remove hostNetwork: true from pod specs unless the workload genuinely requires node networking.",
				URL:  "https://kubernetes.io/docs/concepts/security/pod-security-admission/",
			},
		},
		Categories: []string{"cluster-security"},
		Compliance: []ComplianceEntry{
			{
				Framework:    "CIS-Kubernetes-1.8",
				Requirements: []string{"5.2.4"},
				Attributes: []ComplianceAttribute{
					{Key: "Section", Values: []string{"Policies", "Pod Security Standards"}},
				},
			},
		},
	}
}

func (c K8sHostNetworkCheck) Execute(in Inputs) []Draft {
	if in.Cluster == nil {
		return nil
	}
	var drafts []Draft
	for _, pod := range in.Cluster.Pods {
		d := Draft{
			Status:         StatusPass,
			StatusExtended: fmt.Sprintf("Pod %s does not use the host network.", pod.Name),
			ResourceID:     pod.Name,
			Region:         pod.Namespace,
		}
		if pod.HostNetwork {
			d.Status = StatusFail
			d.StatusExtended = fmt.Sprintf("Pod %s shares the host network namespace.", pod.Name)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
