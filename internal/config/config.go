package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
)

// ScanConfig is the top-level scan configuration, loaded from a YAML file
// passed via --config. Every field is optional; zero values fall back to
// the defaults applied by Load.
type ScanConfig struct {
	// Version must be 1. Guards against future incompatible layouts.
	Version int `yaml:"version"`

	Output OutputConfig `yaml:"output"`
	AWS    AWSConfig    `yaml:"aws"`
	Checks ChecksConfig `yaml:"checks"`
}

// OutputConfig controls where reports are written.
type OutputConfig struct {
	// Directory is the directory report files are written into.
	Directory string `yaml:"directory"`
}

// AWSConfig holds AWS scan defaults used when flags are not provided.
type AWSConfig struct {
	// Profile is used when no --profile flag is provided.
	Profile string `yaml:"profile"`

	// Regions restricts the scan to an explicit region list. Empty means
	// every active region of the account.
	Regions []string `yaml:"regions"`

	// RegionTimeoutSeconds bounds each region's collection time.
	RegionTimeoutSeconds int `yaml:"region_timeout_seconds"`

	// MaxConcurrentRegions bounds the per-region collection fan-out.
	MaxConcurrentRegions int `yaml:"max_concurrent_regions"`
}

// ChecksConfig tunes the check set for one scan.
type ChecksConfig struct {
	// Disabled lists check IDs excluded from the scan.
	Disabled []string `yaml:"disabled"`

	// SeverityOverrides replaces the metadata severity of the named checks.
	// Values must be valid severity levels.
	SeverityOverrides map[string]string `yaml:"severity_overrides"`
}

const (
	defaultOutputDirectory = "output"
	defaultRegionTimeout   = 120
	defaultMaxConcurrent   = 5
)

// Default returns the configuration used when no file is provided.
func Default() *ScanConfig {
	return &ScanConfig{
		Version: 1,
		Output:  OutputConfig{Directory: defaultOutputDirectory},
		AWS: AWSConfig{
			RegionTimeoutSeconds: defaultRegionTimeout,
			MaxConcurrentRegions: defaultMaxConcurrent,
		},
	}
}

// Load reads, parses, and validates the scan configuration at path, then
// fills unset fields with defaults.
func Load(path string) (*ScanConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ScanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scan config %s: %w", path, err)
	}

	if cfg.Version != 1 {
		return nil, errors.New("unsupported scan config version")
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid scan config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// RegionTimeout returns the per-region timeout as a duration.
func (c *ScanConfig) RegionTimeout() time.Duration {
	return time.Duration(c.AWS.RegionTimeoutSeconds) * time.Second
}

// CheckDisabled reports whether checkID is excluded from the scan.
func (c *ScanConfig) CheckDisabled(checkID string) bool {
	for _, id := range c.Checks.Disabled {
		if id == checkID {
			return true
		}
	}
	return false
}

// EffectiveSeverity returns the configured override for checkID, or the
// given metadata severity when none is configured.
func (c *ScanConfig) EffectiveSeverity(checkID, metadataSeverity string) string {
	if override, ok := c.Checks.SeverityOverrides[checkID]; ok {
		return override
	}
	return metadataSeverity
}

// validSeverityLevels mirrors the closed severity set of check metadata.
var validSeverityLevels = map[string]struct{}{
	checks.SeverityCritical:      {},
	checks.SeverityHigh:          {},
	checks.SeverityMedium:        {},
	checks.SeverityLow:           {},
	checks.SeverityInformational: {},
}

func (c *ScanConfig) validate() error {
	for checkID, severity := range c.Checks.SeverityOverrides {
		if _, ok := validSeverityLevels[severity]; !ok {
			return fmt.Errorf("severity override for %s: unknown level %q", checkID, severity)
		}
	}
	if c.AWS.RegionTimeoutSeconds < 0 {
		return errors.New("region_timeout_seconds must not be negative")
	}
	if c.AWS.MaxConcurrentRegions < 0 {
		return errors.New("max_concurrent_regions must not be negative")
	}
	return nil
}

func (c *ScanConfig) applyDefaults() {
	if c.Output.Directory == "" {
		c.Output.Directory = defaultOutputDirectory
	}
	if c.AWS.RegionTimeoutSeconds == 0 {
		c.AWS.RegionTimeoutSeconds = defaultRegionTimeout
	}
	if c.AWS.MaxConcurrentRegions == 0 {
		c.AWS.MaxConcurrentRegions = defaultMaxConcurrent
	}
}
