package kubernetes

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// boolPtr is a helper that returns a pointer to the given bool value.
func boolPtr(b bool) *bool { return &b }

// makePod is a test helper that builds a corev1.Pod with the given name,
// namespace, and containers.
func makePod(namespace, name string, spec corev1.PodSpec) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec:       spec,
	}
}

// makeContainer is a test helper that builds a corev1.Container.
func makeContainer(name string, privileged bool) corev1.Container {
	return corev1.Container{
		Name: name,
		SecurityContext: &corev1.SecurityContext{
			Privileged: boolPtr(privileged),
		},
	}
}

// makeServiceAccount is a test helper that builds a corev1.ServiceAccount.
// Pass nil automount to leave the field unset.
func makeServiceAccount(namespace, name string, automount *bool) *corev1.ServiceAccount {
	return &corev1.ServiceAccount{
		ObjectMeta:                   metav1.ObjectMeta{Name: name, Namespace: namespace},
		AutomountServiceAccountToken: automount,
	}
}

// TestCollectInventory_PrivilegedContainer verifies that a pod with a
// privileged container has ContainerInfo.Privileged == true.
func TestCollectInventory_PrivilegedContainer(t *testing.T) {
	fakeClient := fake.NewSimpleClientset(
		makePod("kube-system", "priv-pod", corev1.PodSpec{
			Containers: []corev1.Container{makeContainer("priv-container", true)},
		}),
	)

	inv, err := CollectInventory(context.Background(), fakeClient, models.ClusterInfo{})
	if err != nil {
		t.Fatalf("CollectInventory error: %v", err)
	}
	if len(inv.Pods) != 1 {
		t.Fatalf("Pods count = %d; want 1", len(inv.Pods))
	}
	pod := inv.Pods[0]
	if pod.Name != "priv-pod" || pod.Namespace != "kube-system" {
		t.Errorf("pod = %s/%s; want kube-system/priv-pod", pod.Namespace, pod.Name)
	}
	if len(pod.Containers) != 1 || !pod.Containers[0].Privileged {
		t.Errorf("Containers = %+v; want single privileged container", pod.Containers)
	}
}

// TestCollectInventory_NonPrivilegedContainer verifies that a pod without
// privileged containers has ContainerInfo.Privileged == false.
func TestCollectInventory_NonPrivilegedContainer(t *testing.T) {
	fakeClient := fake.NewSimpleClientset(
		makePod("default", "normal-pod", corev1.PodSpec{
			Containers: []corev1.Container{makeContainer("app", false)},
		}),
	)

	inv, err := CollectInventory(context.Background(), fakeClient, models.ClusterInfo{})
	if err != nil {
		t.Fatalf("CollectInventory error: %v", err)
	}
	if len(inv.Pods) != 1 {
		t.Fatalf("Pods count = %d; want 1", len(inv.Pods))
	}
	if inv.Pods[0].Containers[0].Privileged {
		t.Error("Privileged = true; want false for non-privileged container")
	}
}

// TestCollectInventory_AutomountDefaultsTrue verifies that an unset
// automountServiceAccountToken is reported as enabled, matching the API
// server default.
func TestCollectInventory_AutomountDefaultsTrue(t *testing.T) {
	fakeClient := fake.NewSimpleClientset(
		makePod("default", "plain-pod", corev1.PodSpec{
			Containers: []corev1.Container{makeContainer("app", false)},
		}),
		makeServiceAccount("default", "default", nil),
	)

	inv, err := CollectInventory(context.Background(), fakeClient, models.ClusterInfo{})
	if err != nil {
		t.Fatalf("CollectInventory error: %v", err)
	}
	if !inv.Pods[0].AutomountServiceAccountToken {
		t.Error("pod AutomountServiceAccountToken = false; want true when unset")
	}
	if len(inv.ServiceAccounts) != 1 {
		t.Fatalf("ServiceAccounts count = %d; want 1", len(inv.ServiceAccounts))
	}
	if !inv.ServiceAccounts[0].AutomountServiceAccountToken {
		t.Error("service account AutomountServiceAccountToken = false; want true when unset")
	}
}

// TestCollectInventory_AutomountDisabled verifies that an explicit false is
// carried through for both pods and service accounts.
func TestCollectInventory_AutomountDisabled(t *testing.T) {
	fakeClient := fake.NewSimpleClientset(
		makePod("production", "locked-pod", corev1.PodSpec{
			AutomountServiceAccountToken: boolPtr(false),
			Containers:                   []corev1.Container{makeContainer("app", false)},
		}),
		makeServiceAccount("production", "locked-sa", boolPtr(false)),
	)

	inv, err := CollectInventory(context.Background(), fakeClient, models.ClusterInfo{})
	if err != nil {
		t.Fatalf("CollectInventory error: %v", err)
	}
	if inv.Pods[0].AutomountServiceAccountToken {
		t.Error("pod AutomountServiceAccountToken = true; want false when explicitly disabled")
	}
	if inv.ServiceAccounts[0].AutomountServiceAccountToken {
		t.Error("service account AutomountServiceAccountToken = true; want false when explicitly disabled")
	}
}

// TestCollectInventory_HostNetwork verifies that spec.hostNetwork is carried
// into PodInfo.
func TestCollectInventory_HostNetwork(t *testing.T) {
	fakeClient := fake.NewSimpleClientset(
		makePod("kube-system", "node-agent", corev1.PodSpec{
			HostNetwork: true,
			Containers:  []corev1.Container{makeContainer("agent", false)},
		}),
	)

	inv, err := CollectInventory(context.Background(), fakeClient, models.ClusterInfo{})
	if err != nil {
		t.Fatalf("CollectInventory error: %v", err)
	}
	if !inv.Pods[0].HostNetwork {
		t.Error("HostNetwork = false; want true")
	}
}

// TestCollectInventory_EmptyCluster verifies that an empty cluster returns
// empty slices and carries the ClusterInfo through.
func TestCollectInventory_EmptyCluster(t *testing.T) {
	fakeClient := fake.NewSimpleClientset()

	info := models.ClusterInfo{ContextName: "staging", Server: "https://127.0.0.1:6443"}
	inv, err := CollectInventory(context.Background(), fakeClient, info)
	if err != nil {
		t.Fatalf("CollectInventory error: %v", err)
	}
	if len(inv.Pods) != 0 {
		t.Errorf("Pods count = %d; want 0", len(inv.Pods))
	}
	if len(inv.ServiceAccounts) != 0 {
		t.Errorf("ServiceAccounts count = %d; want 0", len(inv.ServiceAccounts))
	}
	if inv.ClusterInfo != info {
		t.Errorf("ClusterInfo = %+v; want %+v", inv.ClusterInfo, info)
	}
}
