package engine

import (
	"context"
	"errors"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sclient "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	k8spack "github.com/deepak-negi-devops/cloudvet/internal/checkpacks/kubernetes"
	"github.com/deepak-negi-devops/cloudvet/internal/config"
	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// fakeKubeProvider is a test double for kube.KubeClientProvider returning a
// pre-built fake clientset.
type fakeKubeProvider struct {
	clientset  k8sclient.Interface
	info       models.ClusterInfo
	err        error
	reqContext string
}

func (f *fakeKubeProvider) ClientsetForContext(contextName string) (k8sclient.Interface, models.ClusterInfo, error) {
	f.reqContext = contextName
	if f.err != nil {
		return nil, models.ClusterInfo{}, f.err
	}
	return f.clientset, f.info, nil
}

// privilegedPod builds a pod running one privileged container.
func privilegedPod(namespace, name string) *corev1.Pod {
	privileged := true
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{{
				Name:            "app",
				SecurityContext: &corev1.SecurityContext{Privileged: &privileged},
			}},
		},
	}
}

// newClusterEngine builds a KubernetesScanEngine over the full cluster check
// pack and the supplied provider.
func newClusterEngine(t *testing.T, provider *fakeKubeProvider, cfg *config.ScanConfig) *KubernetesScanEngine {
	t.Helper()
	return NewKubernetesScanEngine(provider, newTestRegistry(t, k8spack.New()...), cfg)
}

// TestKubernetesScanEngine_RunScan verifies the cluster scan path end to end:
// inventory collection from the clientset, check execution, and context
// identity derived from the kubeconfig context.
func TestKubernetesScanEngine_RunScan(t *testing.T) {
	provider := &fakeKubeProvider{
		clientset: fake.NewSimpleClientset(privilegedPod("kube-system", "node-agent")),
		info:      models.ClusterInfo{ContextName: "prod-cluster", Server: "https://127.0.0.1:6443"},
	}

	report, err := newClusterEngine(t, provider, config.Default()).
		RunScan(context.Background(), ScanOptions{KubeContext: "prod-cluster"})
	if err != nil {
		t.Fatalf("RunScan error: %v", err)
	}

	if provider.reqContext != "prod-cluster" {
		t.Errorf("requested context = %q; want prod-cluster", provider.reqContext)
	}
	if report.Context.Provider != "kubernetes" {
		t.Errorf("Context.Provider = %q; want kubernetes", report.Context.Provider)
	}
	if report.Context.AccountID != "prod-cluster" {
		t.Errorf("Context.AccountID = %q; want the kubeconfig context name", report.Context.AccountID)
	}

	if report.Summary.Failed < 1 {
		t.Fatalf("Summary = %+v; want at least one FAIL for the privileged pod", report.Summary)
	}
	var sawPrivileged bool
	for _, f := range report.Findings {
		if f.CheckID == "core_minimize_privileged_containers" && f.Status == string(checks.StatusFail) {
			sawPrivileged = true
			if f.Region != "kube-system" {
				t.Errorf("Region = %q; want the pod namespace kube-system", f.Region)
			}
		}
	}
	if !sawPrivileged {
		t.Error("no FAIL finding for the privileged container check")
	}
}

// TestKubernetesScanEngine_ConnectFailure verifies that an unreachable
// cluster is a fatal error.
func TestKubernetesScanEngine_ConnectFailure(t *testing.T) {
	connErr := errors.New("context not found")
	provider := &fakeKubeProvider{err: connErr}

	if _, err := newClusterEngine(t, provider, config.Default()).
		RunScan(context.Background(), ScanOptions{KubeContext: "absent"}); !errors.Is(err, connErr) {
		t.Fatalf("RunScan error = %v; want wrapped connect failure", err)
	}
}

// TestKubernetesScanEngine_EmptyCluster verifies that an empty cluster yields
// an empty but well-formed report.
func TestKubernetesScanEngine_EmptyCluster(t *testing.T) {
	provider := &fakeKubeProvider{
		clientset: fake.NewSimpleClientset(),
		info:      models.ClusterInfo{ContextName: "empty"},
	}

	report, err := newClusterEngine(t, provider, config.Default()).
		RunScan(context.Background(), ScanOptions{})
	if err != nil {
		t.Fatalf("RunScan error: %v", err)
	}
	if report.Summary.TotalFindings != 0 {
		t.Errorf("Summary = %+v; want no findings for an empty cluster", report.Summary)
	}
}
