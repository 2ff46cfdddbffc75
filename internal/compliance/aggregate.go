// Package compliance groups canonical findings by framework requirement and
// sub-requirement and computes the hierarchical pass/fail tallies used for
// reporting rollups. It also loads historical compliance CSVs for report
// browsing.
package compliance

import (
	"strings"

	"github.com/deepak-negi-devops/cloudvet/internal/findings"
)

// SubtechniquesKey is the compliance attribute whose values become
// sub-requirement rows (one row per value).
const SubtechniquesKey = "Subtechniques"

// Row is one flat compliance-report row: a finding joined to one framework
// requirement (and optionally one sub-requirement) of its check.
type Row struct {
	CheckID        string
	Status         string
	Region         string
	AccountID      string
	ResourceID     string
	RequirementID  string
	SubRequirement string
	AssessmentDay  string // "2006-01-02"
}

// BuildRows expands findings into compliance rows for one framework.
// Each finding contributes one row per (requirement, sub-requirement) pair of
// the matching framework entry; entries without sub-requirement attributes
// contribute one row per requirement with an empty sub-requirement. Rows keep
// the finding stream's order, which is what makes requirement presentation
// order stable run-to-run.
func BuildRows(fs []findings.Finding, framework string) []Row {
	var rows []Row
	for _, f := range fs {
		for _, e := range f.ComplianceEntries {
			if e.Framework != framework {
				continue
			}
			var subs []string
			for _, a := range e.Attributes {
				if a.Key == SubtechniquesKey {
					subs = append(subs, a.Values...)
				}
			}
			if len(subs) == 0 {
				subs = []string{""}
			}
			for _, req := range e.Requirements {
				for _, sub := range subs {
					rows = append(rows, Row{
						CheckID:        f.CheckID,
						Status:         f.Status,
						Region:         f.Region,
						AccountID:      f.AccountID,
						ResourceID:     f.ResourceID,
						RequirementID:  req,
						SubRequirement: sub,
						AssessmentDay:  f.AssessmentTime.UTC().Format("2006-01-02"),
					})
				}
			}
		}
	}
	return rows
}

// StatusCounts holds pass/fail tallies for one group. A group with no
// findings of a status reports zero, never a missing value.
type StatusCounts struct {
	Pass int
	Fail int
}

// SubRequirementCount is the leaf tally for one sub-requirement.
type SubRequirementCount struct {
	SubRequirement string
	Counts         StatusCounts
}

// RequirementRollup is the tally for one requirement: its own counts are the
// sum of its sub-requirement leaf counts.
type RequirementRollup struct {
	RequirementID string
	Counts        StatusCounts
	Sub           []SubRequirementCount
}

// dedupeKey is the tuple that makes a row count exactly once. A resource can
// legitimately appear once per distinct finding, but join fan-out across
// requirements must never double-count it.
type dedupeKey struct {
	status, requirementID, subRequirement, checkID, region, accountID, resourceID string
}

// Aggregate deduplicates rows and computes leaf counts per sub-requirement,
// then rolls the leaves up to their requirement. Requirement order (and
// sub-requirement order within a requirement) follows first-seen order in the
// input stream; nothing is sorted.
func Aggregate(rows []Row) []RequirementRollup {
	seen := make(map[dedupeKey]struct{})

	type subSlot struct {
		order  []string
		counts map[string]*StatusCounts
	}

	var reqOrder []string
	subs := make(map[string]*subSlot)

	for _, r := range rows {
		key := dedupeKey{
			status:         r.Status,
			requirementID:  r.RequirementID,
			subRequirement: r.SubRequirement,
			checkID:        r.CheckID,
			region:         r.Region,
			accountID:      r.AccountID,
			resourceID:     r.ResourceID,
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		slot, ok := subs[r.RequirementID]
		if !ok {
			slot = &subSlot{counts: make(map[string]*StatusCounts)}
			subs[r.RequirementID] = slot
			reqOrder = append(reqOrder, r.RequirementID)
		}
		sc, ok := slot.counts[r.SubRequirement]
		if !ok {
			sc = &StatusCounts{}
			slot.counts[r.SubRequirement] = sc
			slot.order = append(slot.order, r.SubRequirement)
		}

		switch strings.ToUpper(r.Status) {
		case "PASS":
			sc.Pass++
		case "FAIL":
			sc.Fail++
		}
	}

	rollups := make([]RequirementRollup, 0, len(reqOrder))
	for _, req := range reqOrder {
		slot := subs[req]
		rollup := RequirementRollup{RequirementID: req}
		for _, sub := range slot.order {
			sc := slot.counts[sub]
			rollup.Sub = append(rollup.Sub, SubRequirementCount{
				SubRequirement: sub,
				Counts:         *sc,
			})
			rollup.Counts.Pass += sc.Pass
			rollup.Counts.Fail += sc.Fail
		}
		rollups = append(rollups, rollup)
	}
	return rollups
}
