package engine

import (
	"context"
	"fmt"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	"github.com/deepak-negi-devops/cloudvet/internal/config"
	"github.com/deepak-negi-devops/cloudvet/internal/findings"
	"github.com/deepak-negi-devops/cloudvet/internal/providers/aws/common"
	"github.com/deepak-negi-devops/cloudvet/internal/providers/aws/inventory"
	"github.com/deepak-negi-devops/cloudvet/internal/scan"
)

// AWSScanEngine implements Engine for AWS account scans.
// It coordinates inventory collection, check execution, and report assembly.
type AWSScanEngine struct {
	provider  common.AWSClientProvider
	collector inventory.Collector
	registry  *checks.Registry
	cfg       *config.ScanConfig
}

// NewAWSScanEngine constructs an AWSScanEngine wired to the supplied
// provider, inventory collector, check registry, and scan configuration.
func NewAWSScanEngine(
	provider common.AWSClientProvider,
	collector inventory.Collector,
	registry *checks.Registry,
	cfg *config.ScanConfig,
) *AWSScanEngine {
	return &AWSScanEngine{
		provider:  provider,
		collector: collector,
		registry:  registry,
		cfg:       cfg,
	}
}

// RunScan implements Engine. It loads the requested AWS profile, discovers
// regions if not explicitly provided, collects the account inventory, runs
// every registered check against it, and returns the encoded report.
//
// Per-region collection failures do not abort the scan; they are carried in
// the report's RegionErrors. RunScan fails only when the profile cannot be
// loaded, regions cannot be resolved, or the context is cancelled.
func (e *AWSScanEngine) RunScan(ctx context.Context, opts ScanOptions) (*ScanReport, error) {
	profileName := opts.Profile
	if profileName == "" && e.cfg != nil {
		profileName = e.cfg.AWS.Profile
	}

	profile, err := e.provider.LoadProfile(ctx, profileName)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", profileName, err)
	}

	regions, err := e.resolveRegions(ctx, profile, opts.Regions)
	if err != nil {
		return nil, fmt.Errorf("resolve regions for profile %q: %w", profile.ProfileName, err)
	}

	inv, err := e.collector.CollectAll(ctx, profile, e.provider, e.collectOptions(regions))
	if err != nil {
		return nil, fmt.Errorf("collect inventory for profile %q: %w", profile.ProfileName, err)
	}

	sc := scan.NewContext("aws", profile.AccountID, profile.Partition, profile.ProfileName)
	sc.Organization = scan.Organization{
		Name: profile.AccountAlias,
		ARN:  profile.CallerARN,
	}

	results := applyScanConfig(e.registry.ExecuteAll(checks.Inputs{AWS: inv}), e.cfg)
	return buildReport(sc, regions, findings.Encode(results, sc), inv.RegionErrors), nil
}

// resolveRegions returns the explicit region list when provided, then the
// configured list, and otherwise discovers the account's active regions.
func (e *AWSScanEngine) resolveRegions(
	ctx context.Context,
	profile *common.ProfileConfig,
	explicit []string,
) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	if e.cfg != nil && len(e.cfg.AWS.Regions) > 0 {
		return e.cfg.AWS.Regions, nil
	}
	return e.provider.GetActiveRegions(ctx, profile)
}

// collectOptions maps the scan configuration onto collector options.
func (e *AWSScanEngine) collectOptions(regions []string) inventory.CollectOptions {
	opts := inventory.CollectOptions{Regions: regions}
	if e.cfg != nil {
		opts.MaxConcurrentRegions = e.cfg.AWS.MaxConcurrentRegions
		opts.RegionTimeout = e.cfg.RegionTimeout()
	}
	return opts
}
