package findings

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
)

// Separators used by the flat string encodings. Tabular consumers split on
// these, so they are part of the wire contract and must not change.
const (
	listSeparator      = "|"
	pairSeparator      = ":"
	itemSeparator      = ","
	frameworkSeparator = "|"
	memberSeparator    = "/"
)

// UnrollList joins a scalar list with "|" in original order.
// An empty list encodes to the empty string.
func UnrollList(items []string) string {
	return strings.Join(items, listSeparator)
}

// DecodeList is the inverse of UnrollList. The empty string decodes to nil.
func DecodeList(encoded string) []string {
	if encoded == "" {
		return nil
	}
	return strings.Split(encoded, listSeparator)
}

// UnrollTags renders an ordered tag set as "key:value" pairs joined with "|",
// preserving the declared order.
func UnrollTags(tags []checks.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(tags))
	for _, t := range tags {
		pairs = append(pairs, t.Key+pairSeparator+t.Value)
	}
	return strings.Join(pairs, listSeparator)
}

// UnrollTagMap renders a resource tag map as "key:value" pairs joined with
// "|". Map iteration order is not stable in Go, so keys are sorted to keep
// the encoding deterministic across runs.
func UnrollTagMap(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+pairSeparator+tags[k])
	}
	return strings.Join(pairs, listSeparator)
}

// UnrollCompliance flattens a check's compliance tree into a single string.
//
// Per framework: the framework identifier and its requirement IDs form the
// first "key:value" pair (multi-member requirement lists join with "/"),
// followed by each attribute as "key:value" with list values joined "/".
// Pairs within a framework join with ","; frameworks join with "|" in
// declared order. The input slices are ordered, so the output is
// deterministic for identical input.
func UnrollCompliance(entries []checks.ComplianceEntry) string {
	if len(entries) == 0 {
		return ""
	}
	frameworks := make([]string, 0, len(entries))
	for _, e := range entries {
		pairs := make([]string, 0, 1+len(e.Attributes))
		pairs = append(pairs, e.Framework+pairSeparator+strings.Join(e.Requirements, memberSeparator))
		for _, a := range e.Attributes {
			pairs = append(pairs, a.Key+pairSeparator+strings.Join(a.Values, memberSeparator))
		}
		frameworks = append(frameworks, strings.Join(pairs, itemSeparator))
	}
	return strings.Join(frameworks, frameworkSeparator)
}

// UID derives the content-addressed identity of a finding from the check ID,
// account, region, and resource ID. Identical inputs always hash to the same
// UID, which is what makes findings diffable between scans.
func UID(checkID, accountID, region, resourceID string) string {
	sum := sha256.Sum256([]byte(checkID + "-" + accountID + "-" + region + "-" + resourceID))
	return hex.EncodeToString(sum[:])
}
