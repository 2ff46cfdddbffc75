// Package engine orchestrates a scan: it coordinates provider collection,
// check execution, and finding encoding, returning a fully populated
// ScanReport. Engines never call the AWS SDK or kubernetes API directly;
// all calls are delegated to the injected provider and collector interfaces.
package engine

import (
	"context"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	"github.com/deepak-negi-devops/cloudvet/internal/config"
	"github.com/deepak-negi-devops/cloudvet/internal/findings"
	"github.com/deepak-negi-devops/cloudvet/internal/scan"
)

// ScanOptions configures a single scan run.
// It is the sole input to Engine.RunScan.
type ScanOptions struct {
	// Profile is the named AWS profile to scan. Empty means the profile from
	// the scan configuration, falling back to the SDK default profile.
	Profile string

	// Regions is an explicit list of AWS regions to scan.
	// When empty the engine discovers and scans all active regions.
	Regions []string

	// KubeContext is the kubeconfig context for cluster scans.
	// Empty means the current context.
	KubeContext string
}

// Summary aggregates finding counts for one report.
type Summary struct {
	TotalFindings int `json:"total_findings"`
	Passed        int `json:"passed"`
	Failed        int `json:"failed"`

	// FailedBySeverity counts FAIL findings per severity level. Severities
	// with no failures are absent.
	FailedBySeverity map[string]int `json:"failed_by_severity"`
}

// ScanReport is the complete result of one scan run.
type ScanReport struct {
	Context  *scan.Context      `json:"context"`
	Regions  []string           `json:"regions"`
	Summary  Summary            `json:"summary"`
	Findings []findings.Finding `json:"findings"`

	// RegionErrors records regions whose collection partially or fully
	// failed. Findings from those regions may be incomplete.
	RegionErrors map[string]error `json:"-"`
}

// Engine runs a scan and returns its report.
type Engine interface {
	RunScan(ctx context.Context, opts ScanOptions) (*ScanReport, error)
}

// applyScanConfig drops results for disabled checks and applies configured
// severity overrides. Result metadata is a value copy, so overriding the
// severity here never touches the registered check.
func applyScanConfig(results []checks.Result, cfg *config.ScanConfig) []checks.Result {
	if cfg == nil {
		return results
	}
	kept := make([]checks.Result, 0, len(results))
	for _, res := range results {
		if cfg.CheckDisabled(res.Metadata.CheckID) {
			continue
		}
		res.Metadata.Severity = cfg.EffectiveSeverity(res.Metadata.CheckID, res.Metadata.Severity)
		kept = append(kept, res)
	}
	return kept
}

// buildReport assembles the final ScanReport from encoded findings.
func buildReport(sc *scan.Context, regions []string, fs []findings.Finding, regionErrors map[string]error) *ScanReport {
	return &ScanReport{
		Context:      sc,
		Regions:      regions,
		Summary:      computeSummary(fs),
		Findings:     fs,
		RegionErrors: regionErrors,
	}
}

// computeSummary tallies pass/fail counts across all findings.
func computeSummary(fs []findings.Finding) Summary {
	s := Summary{
		TotalFindings:    len(fs),
		FailedBySeverity: make(map[string]int),
	}
	for _, f := range fs {
		if f.Status == string(checks.StatusFail) {
			s.Failed++
			s.FailedBySeverity[f.Severity]++
		} else {
			s.Passed++
		}
	}
	return s
}
