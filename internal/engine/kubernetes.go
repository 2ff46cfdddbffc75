package engine

import (
	"context"
	"fmt"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	"github.com/deepak-negi-devops/cloudvet/internal/config"
	"github.com/deepak-negi-devops/cloudvet/internal/findings"
	kube "github.com/deepak-negi-devops/cloudvet/internal/providers/kubernetes"
	"github.com/deepak-negi-devops/cloudvet/internal/scan"
)

// KubernetesScanEngine implements Engine for cluster scans. The audited
// "account" is the kubeconfig context; check drafts carry the namespace in
// their Region field, so reports stay shape-compatible with AWS scans.
type KubernetesScanEngine struct {
	provider kube.KubeClientProvider
	registry *checks.Registry
	cfg      *config.ScanConfig
}

// NewKubernetesScanEngine constructs a KubernetesScanEngine wired to the
// supplied client provider, check registry, and scan configuration.
func NewKubernetesScanEngine(
	provider kube.KubeClientProvider,
	registry *checks.Registry,
	cfg *config.ScanConfig,
) *KubernetesScanEngine {
	return &KubernetesScanEngine{
		provider: provider,
		registry: registry,
		cfg:      cfg,
	}
}

// RunScan implements Engine. It connects to the cluster named by
// opts.KubeContext, collects the pod and service-account inventory, runs
// every registered check against it, and returns the encoded report.
func (e *KubernetesScanEngine) RunScan(ctx context.Context, opts ScanOptions) (*ScanReport, error) {
	clientset, info, err := e.provider.ClientsetForContext(opts.KubeContext)
	if err != nil {
		return nil, fmt.Errorf("connect to cluster: %w", err)
	}

	inv, err := kube.CollectInventory(ctx, clientset, info)
	if err != nil {
		return nil, fmt.Errorf("collect cluster inventory: %w", err)
	}

	sc := scan.NewContext("kubernetes", info.ContextName, "", info.ContextName)

	results := applyScanConfig(e.registry.ExecuteAll(checks.Inputs{Cluster: inv}), e.cfg)
	return buildReport(sc, nil, findings.Encode(results, sc), nil), nil
}
