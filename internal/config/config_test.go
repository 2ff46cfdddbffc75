package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfig is a test helper that writes YAML content to a temp file and
// returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cloudvet.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad_FullConfig verifies that every section round-trips from YAML.
func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
version: 1
output:
  directory: /tmp/reports
aws:
  profile: audit
  regions: [us-east-1, eu-west-1]
  region_timeout_seconds: 60
  max_concurrent_regions: 3
checks:
  disabled:
    - ec2_instance_public_ip
  severity_overrides:
    s3_bucket_default_encryption: high
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Output.Directory != "/tmp/reports" {
		t.Errorf("Output.Directory = %q; want /tmp/reports", cfg.Output.Directory)
	}
	if cfg.AWS.Profile != "audit" {
		t.Errorf("AWS.Profile = %q; want audit", cfg.AWS.Profile)
	}
	if len(cfg.AWS.Regions) != 2 {
		t.Errorf("AWS.Regions = %v; want 2 regions", cfg.AWS.Regions)
	}
	if cfg.RegionTimeout() != 60*time.Second {
		t.Errorf("RegionTimeout = %v; want 60s", cfg.RegionTimeout())
	}
	if !cfg.CheckDisabled("ec2_instance_public_ip") {
		t.Error("CheckDisabled(ec2_instance_public_ip) = false; want true")
	}
	if cfg.CheckDisabled("s3_bucket_public_access") {
		t.Error("CheckDisabled(s3_bucket_public_access) = true; want false")
	}
	if got := cfg.EffectiveSeverity("s3_bucket_default_encryption", "medium"); got != "high" {
		t.Errorf("EffectiveSeverity override = %q; want high", got)
	}
	if got := cfg.EffectiveSeverity("iam_root_mfa_enabled", "critical"); got != "critical" {
		t.Errorf("EffectiveSeverity fallback = %q; want critical", got)
	}
}

// TestLoad_DefaultsApplied verifies that unset fields get defaults.
func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, "version: 1\n"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Output.Directory != defaultOutputDirectory {
		t.Errorf("Output.Directory = %q; want %q", cfg.Output.Directory, defaultOutputDirectory)
	}
	if cfg.AWS.RegionTimeoutSeconds != defaultRegionTimeout {
		t.Errorf("RegionTimeoutSeconds = %d; want %d", cfg.AWS.RegionTimeoutSeconds, defaultRegionTimeout)
	}
	if cfg.AWS.MaxConcurrentRegions != defaultMaxConcurrent {
		t.Errorf("MaxConcurrentRegions = %d; want %d", cfg.AWS.MaxConcurrentRegions, defaultMaxConcurrent)
	}
}

// TestLoad_UnsupportedVersion verifies the version guard.
func TestLoad_UnsupportedVersion(t *testing.T) {
	if _, err := Load(writeConfig(t, "version: 2\n")); err == nil {
		t.Fatal("Load with version 2: want error, got nil")
	}
}

// TestLoad_InvalidSeverityOverride verifies that unknown severity levels are
// rejected at load time.
func TestLoad_InvalidSeverityOverride(t *testing.T) {
	path := writeConfig(t, `
version: 1
checks:
  severity_overrides:
    iam_root_mfa_enabled: catastrophic
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load with invalid severity: want error, got nil")
	}
}

// TestLoad_MissingFile verifies the read error is surfaced.
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load with missing file: want error, got nil")
	}
}

// TestDefault verifies the programmatic default configuration.
func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Version != 1 {
		t.Errorf("Version = %d; want 1", cfg.Version)
	}
	if cfg.Output.Directory != defaultOutputDirectory {
		t.Errorf("Output.Directory = %q; want %q", cfg.Output.Directory, defaultOutputDirectory)
	}
}
