package compliance

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// internalFilePattern marks CSVs produced for internal framework tooling;
// those files are excluded from historical report browsing.
const internalFilePattern = "mitre"

// historyTimeLayouts are the assessment timestamp layouts accepted in
// historical CSVs, tried in order.
var historyTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// HistoryRow is one row of a historical compliance CSV, keyed by the columns
// the report browser filters on.
type HistoryRow struct {
	CheckID       string
	Status        string
	Region        string
	AccountID     string
	ResourceID    string
	RequirementID string
	AssessmentAt  time.Time
}

// LoadHistory reads every semicolon-delimited CSV under dir and returns the
// rows used for historical report browsing.
//
// Files are skipped when they lack a CHECKID column or when their name
// matches the internal-only pattern. Within the merged rows, only the most
// recent assessment per calendar day is kept, so one day's repeated scans
// collapse to the latest run.
func LoadHistory(dir string) ([]HistoryRow, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list history CSVs in %s: %w", dir, err)
	}

	var rows []HistoryRow
	for _, path := range paths {
		if strings.Contains(strings.ToLower(filepath.Base(path)), internalFilePattern) {
			continue
		}
		fileRows, err := loadHistoryFile(path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}

	return latestPerDay(rows), nil
}

// loadHistoryFile parses one semicolon-delimited CSV. Files without a CHECKID
// header column return nil (excluded, not an error). Rows with a malformed
// timestamp are skipped.
func loadHistoryFile(path string) ([]HistoryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history CSV %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	if _, ok := col["CHECKID"]; !ok {
		return nil, nil
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []HistoryRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		at, ok := parseHistoryTime(field(record, "ASSESSMENTDATE"))
		if !ok {
			continue
		}
		rows = append(rows, HistoryRow{
			CheckID:       field(record, "CHECKID"),
			Status:        field(record, "STATUS"),
			Region:        field(record, "REGION"),
			AccountID:     field(record, "ACCOUNTID"),
			ResourceID:    field(record, "RESOURCEID"),
			RequirementID: field(record, "REQUIREMENTS_ID"),
			AssessmentAt:  at,
		})
	}
	return rows, nil
}

// parseHistoryTime tries each accepted layout in order.
func parseHistoryTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range historyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// latestPerDay keeps only rows whose assessment timestamp equals the most
// recent timestamp observed for their calendar day.
func latestPerDay(rows []HistoryRow) []HistoryRow {
	latest := make(map[string]time.Time)
	for _, r := range rows {
		day := r.AssessmentAt.Format("2006-01-02")
		if r.AssessmentAt.After(latest[day]) {
			latest[day] = r.AssessmentAt
		}
	}

	var kept []HistoryRow
	for _, r := range rows {
		day := r.AssessmentAt.Format("2006-01-02")
		if r.AssessmentAt.Equal(latest[day]) {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].AssessmentAt.Before(kept[j].AssessmentAt)
	})
	return kept
}
