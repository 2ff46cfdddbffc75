package inventory

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
	"github.com/deepak-negi-devops/cloudvet/internal/providers/aws/common"
)

// DefaultCollector is the production implementation of Collector.
// It uses AWS SDK v2 to collect the account inventory region by region.
//
// Inject a custom invClientFactory via NewDefaultCollectorWithFactory to
// replace real SDK clients with mocks in unit tests.
type DefaultCollector struct {
	factory invClientFactory
}

// NewDefaultCollector returns a collector backed by the real AWS SDK.
func NewDefaultCollector() *DefaultCollector {
	return &DefaultCollector{factory: newDefaultInvClients}
}

// NewDefaultCollectorWithFactory returns a collector that uses f to create
// its service clients. Pass a mock factory in tests.
func NewDefaultCollectorWithFactory(f invClientFactory) *DefaultCollector {
	return &DefaultCollector{factory: f}
}

// maxConcurrentRegions is the default bound on parallel region collection.
const defaultMaxConcurrentRegions = 5

// defaultRegionTimeout is the default per-region collection deadline.
const defaultRegionTimeout = 2 * time.Minute

// globalRegion is the key under which account-global collection failures are
// recorded in RegionErrors, and the region the global calls are issued from.
const globalRegion = "us-east-1"

// regionData is one region's collected slices plus its joined error, filled
// by the fan-out workers and merged after the join barrier.
type regionData struct {
	instances      []models.EC2Instance
	securityGroups []models.SecurityGroup
	snapshots      []models.EBSSnapshot
	guardDuty      *models.GuardDutyStatus
	configRecorder *models.ConfigRecorderStatus
	rdsInstances   []models.RDSInstance
	eksClusters    []models.EKSCluster
	listeners      []models.LoadBalancerListener
	metricAlarms   []models.MetricAlarm
	err            error
}

// CollectAll is the top-level coordinator.
//
// Flow:
//  1. Global phase: S3 buckets, IAM users, root account posture, and
//     CloudTrail configuration from us-east-1. These are account-level
//     services; collecting them once avoids duplicate findings per region.
//  2. Regional phase: every region in opts.Regions is collected in parallel,
//     bounded by a semaphore channel. A region failure is recorded in
//     RegionErrors and does not cancel the other regions.
//  3. Join barrier, then merge per-region results in the caller's region
//     order so inventory slices are deterministic for a given input.
//  4. Snapshot attribute phase: with the complete snapshot list in hand,
//     resolve each snapshot's public/private visibility. The lookup is keyed
//     by the IDs gathered in the first pass, so it cannot start earlier.
func (d *DefaultCollector) CollectAll(
	ctx context.Context,
	profile *common.ProfileConfig,
	provider common.AWSClientProvider,
	opts CollectOptions,
) (*models.AWSInventory, error) {
	maxConcurrent := opts.MaxConcurrentRegions
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentRegions
	}
	regionTimeout := opts.RegionTimeout
	if regionTimeout <= 0 {
		regionTimeout = defaultRegionTimeout
	}

	inv := &models.AWSInventory{RegionErrors: map[string]error{}}

	// 1. Account-global services.
	globalClients := d.factory(provider.ConfigForRegion(profile, globalRegion))
	d.collectGlobal(ctx, globalClients, profile, inv)

	// 2. Per-region fan-out. Results land in an indexed slice so the merge
	// below is deterministic regardless of completion order. Workers never
	// return an error: doing so would cancel the shared errgroup context and
	// take the healthy regions down with the failed one.
	results := make([]*regionData, len(opts.Regions))
	sem := make(chan struct{}, maxConcurrent)

	g, gctx := errgroup.WithContext(ctx)

REGIONS:
	for i, region := range opts.Regions {
		i, region := i, region // capture loop variables for goroutine closure
		select {
		case sem <- struct{}{}: // acquire semaphore slot; blocks when at capacity
		case <-gctx.Done():
			break REGIONS
		}

		clients := d.factory(provider.ConfigForRegion(profile, region))

		g.Go(func() error {
			defer func() { <-sem }() // release semaphore slot on return

			rctx, cancel := context.WithTimeout(gctx, regionTimeout)
			defer cancel()

			results[i] = d.collectRegion(rctx, clients, profile, region)
			return nil
		})
	}

	// 3. Join barrier.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, region := range opts.Regions {
		rd := results[i]
		if rd == nil {
			inv.RegionErrors[region] = context.Canceled
			continue
		}
		inv.Instances = append(inv.Instances, rd.instances...)
		inv.SecurityGroups = append(inv.SecurityGroups, rd.securityGroups...)
		inv.Snapshots = append(inv.Snapshots, rd.snapshots...)
		if rd.guardDuty != nil {
			inv.GuardDuty = append(inv.GuardDuty, *rd.guardDuty)
		}
		if rd.configRecorder != nil {
			inv.ConfigRecorders = append(inv.ConfigRecorders, *rd.configRecorder)
		}
		inv.RDSInstances = append(inv.RDSInstances, rd.rdsInstances...)
		inv.EKSClusters = append(inv.EKSClusters, rd.eksClusters...)
		inv.Listeners = append(inv.Listeners, rd.listeners...)
		inv.MetricAlarms = append(inv.MetricAlarms, rd.metricAlarms...)
		if rd.err != nil {
			inv.RegionErrors[region] = rd.err
		}
	}

	// 4. Snapshot visibility resolution over the complete snapshot list.
	d.resolveSnapshotVisibility(ctx, provider, profile, inv, maxConcurrent)

	return inv, nil
}

// collectGlobal gathers the account-level services. Each service failure is
// recorded against the global pseudo-region; the remaining services still run.
func (d *DefaultCollector) collectGlobal(
	ctx context.Context,
	clients *invClients,
	profile *common.ProfileConfig,
	inv *models.AWSInventory,
) {
	var errs []error

	buckets, err := collectS3Buckets(ctx, clients.S3, profile.Partition)
	if err != nil {
		errs = append(errs, &CollectionError{Region: globalRegion, Service: "s3", Err: err})
	} else {
		inv.Buckets = buckets
	}

	users, err := collectIAMUsers(ctx, clients.IAM)
	if err != nil {
		errs = append(errs, &CollectionError{Region: globalRegion, Service: "iam", Err: err})
	} else {
		inv.IAMUsers = users
	}

	root, err := collectRootAccountInfo(ctx, clients.IAM)
	if err != nil {
		errs = append(errs, &CollectionError{Region: globalRegion, Service: "iam-root", Err: err})
	} else {
		inv.Root = root
	}

	trail, err := collectCloudTrailStatus(ctx, clients.CloudTrail)
	if err != nil {
		errs = append(errs, &CollectionError{Region: globalRegion, Service: "cloudtrail", Err: err})
	} else {
		inv.CloudTrail = trail
	}

	if len(errs) > 0 {
		inv.RegionErrors[globalRegion] = errors.Join(errs...)
	}
}

// collectRegion gathers every regional service for one region. A service
// failure is recorded and the remaining services still run, so a throttled
// or unauthorized API leaves the rest of the region's data intact.
func (d *DefaultCollector) collectRegion(
	ctx context.Context,
	clients *invClients,
	profile *common.ProfileConfig,
	region string,
) *regionData {
	rd := &regionData{}
	var errs []error

	record := func(service string, err error) {
		errs = append(errs, &CollectionError{Region: region, Service: service, Err: err})
	}

	var err error

	rd.instances, err = collectEC2Instances(ctx, clients.EC2, profile, region)
	if err != nil {
		record("ec2-instances", err)
	}

	rd.securityGroups, err = collectSecurityGroups(ctx, clients.EC2, profile, region)
	if err != nil {
		record("ec2-security-groups", err)
	}

	rd.snapshots, err = collectSnapshots(ctx, clients.EC2, profile, region)
	if err != nil {
		record("ec2-snapshots", err)
	}

	rd.guardDuty, err = collectGuardDutyStatus(ctx, clients.GuardDuty, region)
	if err != nil {
		record("guardduty", err)
	}

	rd.configRecorder, err = collectConfigRecorderStatus(ctx, clients.Config, region)
	if err != nil {
		record("config", err)
	}

	rd.rdsInstances, err = collectRDSInstances(ctx, clients.RDS, region)
	if err != nil {
		record("rds", err)
	}

	rd.eksClusters, err = collectEKSClusters(ctx, clients.EKS, region)
	if err != nil {
		record("eks", err)
	}

	rd.listeners, err = collectLoadBalancerListeners(ctx, clients.ELB, region)
	if err != nil {
		record("elbv2", err)
	}

	rd.metricAlarms, err = collectMetricAlarms(ctx, clients.CloudWatch, region)
	if err != nil {
		record("cloudwatch", err)
	}

	rd.err = errors.Join(errs...)
	return rd
}

// resolveSnapshotVisibility fills EBSSnapshot.Public for every snapshot in
// inv. It runs strictly after the regional join barrier: the lookups need the
// full per-region snapshot ID lists. Lookup failures are recorded against the
// snapshot's region; the snapshot then keeps its zero (private) value.
func (d *DefaultCollector) resolveSnapshotVisibility(
	ctx context.Context,
	provider common.AWSClientProvider,
	profile *common.ProfileConfig,
	inv *models.AWSInventory,
	maxConcurrent int,
) {
	// Group snapshot indices by region so each region uses one client.
	byRegion := map[string][]int{}
	var regionOrder []string
	for i, snap := range inv.Snapshots {
		if _, seen := byRegion[snap.Region]; !seen {
			regionOrder = append(regionOrder, snap.Region)
		}
		byRegion[snap.Region] = append(byRegion[snap.Region], i)
	}

	type regionErr struct {
		region string
		err    error
	}
	errCh := make(chan regionErr, len(regionOrder))
	sem := make(chan struct{}, maxConcurrent)

	g, gctx := errgroup.WithContext(ctx)

	for _, region := range regionOrder {
		region := region
		indices := byRegion[region]
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			continue
		}

		clients := d.factory(provider.ConfigForRegion(profile, region))

		g.Go(func() error {
			defer func() { <-sem }()

			var errs []error
			for _, i := range indices {
				public, err := snapshotIsPublic(gctx, clients.EC2, inv.Snapshots[i].SnapshotID)
				if err != nil {
					errs = append(errs, &CollectionError{Region: region, Service: "ec2-snapshot-attribute", Err: err})
					continue
				}
				inv.Snapshots[i].Public = public
			}
			if len(errs) > 0 {
				errCh <- regionErr{region: region, err: errors.Join(errs...)}
			}
			return nil
		})
	}

	_ = g.Wait() // workers never return errors
	close(errCh)

	for re := range errCh {
		if prev, ok := inv.RegionErrors[re.region]; ok {
			inv.RegionErrors[re.region] = errors.Join(prev, re.err)
		} else {
			inv.RegionErrors[re.region] = re.err
		}
	}
}
