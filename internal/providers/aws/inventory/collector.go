package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
	"github.com/deepak-negi-devops/cloudvet/internal/providers/aws/common"
)

// CollectOptions controls one inventory collection run.
type CollectOptions struct {
	// Regions are the regions to collect from. The engine passes either the
	// account's active regions or the user-configured subset.
	Regions []string

	// MaxConcurrentRegions bounds the per-region fan-out.
	// Zero means defaultMaxConcurrentRegions.
	MaxConcurrentRegions int

	// RegionTimeout bounds each region's collection. A region that exceeds it
	// is recorded as failed; other regions are unaffected.
	// Zero means defaultRegionTimeout.
	RegionTimeout time.Duration
}

// Collector gathers the full resource inventory for one AWS account.
//
// A region's failure never aborts the run: the failed region is recorded in
// AWSInventory.RegionErrors and every other region's data is kept. The only
// fatal outcome is ctx being cancelled before collection completes.
type Collector interface {
	CollectAll(
		ctx context.Context,
		profile *common.ProfileConfig,
		provider common.AWSClientProvider,
		opts CollectOptions,
	) (*models.AWSInventory, error)
}

// CollectionError is a single service collection failure inside one region.
// Failures for the same region are joined under AWSInventory.RegionErrors.
type CollectionError struct {
	Region  string
	Service string
	Err     error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collect %s in %s: %v", e.Service, e.Region, e.Err)
}

func (e *CollectionError) Unwrap() error { return e.Err }
