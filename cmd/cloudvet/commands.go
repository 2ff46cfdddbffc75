package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	awspack "github.com/deepak-negi-devops/cloudvet/internal/checkpacks/aws_security"
	k8spack "github.com/deepak-negi-devops/cloudvet/internal/checkpacks/kubernetes"
	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	"github.com/deepak-negi-devops/cloudvet/internal/config"
	"github.com/deepak-negi-devops/cloudvet/internal/engine"
	"github.com/deepak-negi-devops/cloudvet/internal/outputs"
	"github.com/deepak-negi-devops/cloudvet/internal/providers/aws/common"
	"github.com/deepak-negi-devops/cloudvet/internal/providers/aws/inventory"
	kube "github.com/deepak-negi-devops/cloudvet/internal/providers/kubernetes"
	"github.com/deepak-negi-devops/cloudvet/internal/version"
)

// Export format names accepted by --format.
const (
	formatASFF = "json-asff"
	formatOCSF = "json-ocsf"
	formatCSV  = "csv"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cloudvet",
		Short: "cloudvet — cloud security posture scanner",
	}
	root.AddCommand(newScanCmd())
	root.AddCommand(newComplianceCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a provider account against the registered checks",
	}
	cmd.AddCommand(newScanAWSCmd())
	cmd.AddCommand(newScanKubernetesCmd())
	return cmd
}

func newScanAWSCmd() *cobra.Command {
	var (
		profile    string
		regions    []string
		configPath string
		formats    []string
		frameworks []string
		failedOnly bool
		colored    bool
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "aws",
		Short: "Scan an AWS account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScanConfig(configPath)
			if err != nil {
				return err
			}

			registry := checks.NewRegistry()
			if err := registry.RegisterAll(awspack.New()); err != nil {
				return fmt.Errorf("register checks: %w", err)
			}

			eng := engine.NewAWSScanEngine(
				common.NewDefaultAWSClientProvider(),
				inventory.NewDefaultCollector(),
				registry,
				cfg,
			)

			report, err := eng.RunScan(cmd.Context(), engine.ScanOptions{
				Profile: profile,
				Regions: regions,
			})
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			warnRegionErrors(cmd.ErrOrStderr(), report)
			if err := exportReport(report, cfg.Output.Directory, formats, frameworks); err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printScanSummary(cmd.OutOrStdout(), report)
			outputs.RenderTable(cmd.OutOrStdout(), report.Findings, outputs.TableOptions{
				Colored:    colored,
				FailedOnly: failedOnly,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "AWS profile name (default: config file, then the default profile)")
	cmd.Flags().StringSliceVar(&regions, "region", nil, "AWS region(s) to scan (default: all active regions)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the scan configuration YAML")
	cmd.Flags().StringSliceVar(&formats, "format", []string{formatASFF, formatOCSF, formatCSV}, "Export formats: json-asff, json-ocsf, csv")
	cmd.Flags().StringSliceVar(&frameworks, "compliance", []string{"CIS-AWS-1.5", "MITRE-ATTACK"}, "Compliance frameworks for the CSV export")
	cmd.Flags().BoolVar(&failedOnly, "failed-only", false, "Show only FAIL findings in the table")
	cmd.Flags().BoolVar(&colored, "color", false, "Colour severity labels in the table")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full report as JSON instead of a table")

	return cmd
}

func newScanKubernetesCmd() *cobra.Command {
	var (
		kubeContext string
		configPath  string
		formats     []string
		frameworks  []string
		failedOnly  bool
		colored     bool
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:     "kubernetes",
		Aliases: []string{"k8s"},
		Short:   "Scan a Kubernetes cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScanConfig(configPath)
			if err != nil {
				return err
			}

			registry := checks.NewRegistry()
			if err := registry.RegisterAll(k8spack.New()); err != nil {
				return fmt.Errorf("register checks: %w", err)
			}

			eng := engine.NewKubernetesScanEngine(kube.NewDefaultKubeClientProvider(), registry, cfg)
			report, err := eng.RunScan(cmd.Context(), engine.ScanOptions{KubeContext: kubeContext})
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if err := exportReport(report, cfg.Output.Directory, formats, frameworks); err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printScanSummary(cmd.OutOrStdout(), report)
			outputs.RenderTable(cmd.OutOrStdout(), report.Findings, outputs.TableOptions{
				Colored:       colored,
				FailedOnly:    failedOnly,
				LocationLabel: "NAMESPACE",
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&kubeContext, "context", "", "Kubeconfig context to scan (default: current context)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the scan configuration YAML")
	cmd.Flags().StringSliceVar(&formats, "format", []string{formatASFF, formatOCSF, formatCSV}, "Export formats: json-asff, json-ocsf, csv")
	cmd.Flags().StringSliceVar(&frameworks, "compliance", []string{"CIS-Kubernetes-1.8"}, "Compliance frameworks for the CSV export")
	cmd.Flags().BoolVar(&failedOnly, "failed-only", false, "Show only FAIL findings in the table")
	cmd.Flags().BoolVar(&colored, "color", false, "Colour severity labels in the table")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full report as JSON instead of a table")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

// loadScanConfig loads the YAML scan configuration at path, or the built-in
// defaults when no path is given.
func loadScanConfig(path string) (*config.ScanConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load scan config: %w", err)
	}
	return cfg, nil
}

// warnRegionErrors prints per-region collection failures to w. The scan
// itself continues with partial data; the warnings tell the operator which
// regions may be under-reported.
func warnRegionErrors(w io.Writer, report *engine.ScanReport) {
	for _, region := range report.Regions {
		if err, failed := report.RegionErrors[region]; failed {
			fmt.Fprintf(w, "warning: incomplete collection in %s: %v\n", region, err)
		}
	}
}

// exportReport writes the report findings to the output directory in every
// requested format. A write failure is fatal: the error propagates so the
// process exits non-zero rather than reporting a half-written artifact.
func exportReport(report *engine.ScanReport, dir string, formats, frameworks []string) error {
	if len(formats) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	base := fmt.Sprintf("cloudvet-%s-%s",
		report.Context.AccountID,
		report.Context.AssessmentTime.Format("20060102150405"),
	)

	for _, format := range formats {
		switch format {
		case formatASFF:
			w, err := outputs.NewASFFWriter(filepath.Join(dir, base+".asff.json"))
			if err != nil {
				return err
			}
			for _, f := range report.Findings {
				if err := w.Write(f); err != nil {
					return err
				}
			}
			if err := w.Finalize(); err != nil {
				return err
			}
		case formatOCSF:
			w, err := outputs.NewOCSFWriter(filepath.Join(dir, base+".ocsf.json"))
			if err != nil {
				return err
			}
			for _, f := range report.Findings {
				if err := w.Write(f); err != nil {
					return err
				}
			}
			if err := w.Finalize(); err != nil {
				return err
			}
		case formatCSV:
			for _, framework := range frameworks {
				path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", base, csvFileSuffix(framework)))
				if err := outputs.WriteComplianceCSV(path, report.Findings, framework); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unknown export format %q", format)
		}
	}
	return nil
}

// csvFileSuffix turns a framework identifier into a filename-safe suffix.
func csvFileSuffix(framework string) string {
	return strings.ToLower(strings.NewReplacer("-", "_", ".", "_").Replace(framework))
}

// printJSON writes the report as indented JSON to w.
func printJSON(w io.Writer, report *engine.ScanReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// printScanSummary renders the scan header and per-severity tallies to w.
func printScanSummary(w io.Writer, report *engine.ScanReport) {
	fmt.Fprintf(w, "Account:  %s\n", report.Context.AccountID)
	fmt.Fprintf(w, "Profile:  %s\n", report.Context.Profile)
	if len(report.Regions) > 0 {
		fmt.Fprintf(w, "Regions:  %d\n", len(report.Regions))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Findings:  %d\n", report.Summary.TotalFindings)
	fmt.Fprintf(w, "Passed:          %d\n", report.Summary.Passed)
	fmt.Fprintf(w, "Failed:          %d\n", report.Summary.Failed)

	if report.Summary.Failed > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Failures by Severity")
		for _, severity := range []string{
			checks.SeverityCritical,
			checks.SeverityHigh,
			checks.SeverityMedium,
			checks.SeverityLow,
			checks.SeverityInformational,
		} {
			if n := report.Summary.FailedBySeverity[severity]; n > 0 {
				fmt.Fprintf(w, "  %-14s %d\n", severity, n)
			}
		}
	}
	fmt.Fprintln(w)
}
