package models

// ClusterInfo identifies the Kubernetes cluster being scanned.
type ClusterInfo struct {
	ContextName string `json:"context_name"`
	Server      string `json:"server"`
}

// ContainerInfo is the subset of container spec relevant to security checks.
type ContainerInfo struct {
	Name       string `json:"name"`
	Privileged bool   `json:"privileged"`
}

// PodInfo is a pod with the attributes the check runner evaluates.
type PodInfo struct {
	Name                         string          `json:"name"`
	Namespace                    string          `json:"namespace"`
	AutomountServiceAccountToken bool            `json:"automount_service_account_token"`
	HostNetwork                  bool            `json:"host_network"`
	Containers                   []ContainerInfo `json:"containers"`
}

// ServiceAccountInfo is a service account's token automount posture.
type ServiceAccountInfo struct {
	Name                         string `json:"name"`
	Namespace                    string `json:"namespace"`
	AutomountServiceAccountToken bool   `json:"automount_service_account_token"`
}

// ClusterInventory is the full Kubernetes resource inventory for one scan.
// Published read-only to the check runner, lifetime one scan run.
type ClusterInventory struct {
	ClusterInfo     ClusterInfo          `json:"cluster_info"`
	Pods            []PodInfo            `json:"pods"`
	ServiceAccounts []ServiceAccountInfo `json:"service_accounts"`
}
