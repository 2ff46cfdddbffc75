package kubernetes

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sclient "k8s.io/client-go/kubernetes"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// CollectInventory collects pods and service accounts from the cluster using
// the provided clientset and attaches the resolved ClusterInfo to the result.
//
// Both collections are attempted; an error from either aborts the collection.
// The clientset parameter is an interface so tests can inject a fake clientset.
func CollectInventory(ctx context.Context, clientset k8sclient.Interface, info models.ClusterInfo) (*models.ClusterInventory, error) {
	pods, err := collectPods(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("collect pods: %w", err)
	}

	serviceAccounts, err := collectServiceAccounts(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("collect service accounts: %w", err)
	}

	return &models.ClusterInventory{
		ClusterInfo:     info,
		Pods:            pods,
		ServiceAccounts: serviceAccounts,
	}, nil
}

// collectPods lists all pods across all namespaces and converts them to
// PodInfo. For each container it extracts the privileged flag; the pod-level
// automount field defaults to true when unset, matching the API server.
func collectPods(ctx context.Context, clientset k8sclient.Interface) ([]models.PodInfo, error) {
	podList, err := clientset.CoreV1().Pods("").List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	pods := make([]models.PodInfo, 0, len(podList.Items))
	for _, p := range podList.Items {
		pod := models.PodInfo{
			Name:                         p.Name,
			Namespace:                    p.Namespace,
			AutomountServiceAccountToken: p.Spec.AutomountServiceAccountToken == nil || *p.Spec.AutomountServiceAccountToken,
			HostNetwork:                  p.Spec.HostNetwork,
		}
		for _, c := range p.Spec.Containers {
			privileged := c.SecurityContext != nil &&
				c.SecurityContext.Privileged != nil &&
				*c.SecurityContext.Privileged

			pod.Containers = append(pod.Containers, models.ContainerInfo{
				Name:       c.Name,
				Privileged: privileged,
			})
		}
		pods = append(pods, pod)
	}
	return pods, nil
}

// collectServiceAccounts lists all service accounts across all namespaces.
// An unset automountServiceAccountToken defaults to true, matching the API
// server.
func collectServiceAccounts(ctx context.Context, clientset k8sclient.Interface) ([]models.ServiceAccountInfo, error) {
	saList, err := clientset.CoreV1().ServiceAccounts("").List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	serviceAccounts := make([]models.ServiceAccountInfo, 0, len(saList.Items))
	for _, sa := range saList.Items {
		serviceAccounts = append(serviceAccounts, models.ServiceAccountInfo{
			Name:                         sa.Name,
			Namespace:                    sa.Namespace,
			AutomountServiceAccountToken: sa.AutomountServiceAccountToken == nil || *sa.AutomountServiceAccountToken,
		})
	}
	return serviceAccounts, nil
}
