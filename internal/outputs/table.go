package outputs

import (
	"fmt"
	"io"
	"strings"

	"github.com/deepak-negi-devops/cloudvet/internal/findings"
)

// ANSI color codes for severity output (used when Colored=true).
const (
	ansiReset   = "\033[0m"
	ansiBoldRed = "\033[1;31m"
	ansiRed     = "\033[0;31m"
	ansiYellow  = "\033[0;33m"
	ansiBlue    = "\033[0;34m"
)

// TableOptions controls how RenderTable renders findings.
type TableOptions struct {
	// Colored wraps severity labels with ANSI codes. Default false (CI-safe).
	Colored bool

	// FailedOnly hides PASS findings, showing failures only.
	FailedOnly bool

	// LocationLabel is the column header for the region/namespace column.
	// Defaults to "REGION". Use "NAMESPACE" for cluster scans.
	LocationLabel string
}

// ShortenMessage truncates msg to at most max runes, appending "..." when
// truncated. max is treated as at least 4 to guarantee space for the ellipsis.
func ShortenMessage(msg string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max-3]) + "..."
}

// severityCell returns the severity padded to width characters.
// When colored, ANSI codes wrap only the text; trailing padding spaces are plain
// so subsequent columns stay visually aligned regardless of terminal ANSI support.
func severityCell(severity string, width int, colored bool) string {
	if !colored {
		return fmt.Sprintf("%-*s", width, severity)
	}
	var code string
	switch severity {
	case "critical":
		code = ansiBoldRed
	case "high":
		code = ansiRed
	case "medium":
		code = ansiYellow
	case "low":
		code = ansiBlue
	default:
		return fmt.Sprintf("%-*s", width, severity)
	}
	spaces := width - len(severity)
	if spaces < 0 {
		spaces = 0
	}
	return code + severity + ansiReset + strings.Repeat(" ", spaces)
}

// statusCell returns the status padded to width, with FAIL coloured red when
// colored is true.
func statusCell(status string, width int, colored bool) string {
	if !colored || status != "FAIL" {
		return fmt.Sprintf("%-*s", width, status)
	}
	spaces := width - len(status)
	if spaces < 0 {
		spaces = 0
	}
	return ansiRed + status + ansiReset + strings.Repeat(" ", spaces)
}

// truncateField shortens s to at most max bytes for ID/label columns.
// A single-char ellipsis replaces the last byte when truncation occurs.
func truncateField(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// RenderTable writes a formatted findings table to w. The separator line
// width is derived from the header row so all rows align correctly.
//
// Column order:
//
//	CHECK ID  RESOURCE ID  LOCATION  STATUS  SEVERITY  MESSAGE
func RenderTable(w io.Writer, fs []findings.Finding, opts TableOptions) {
	if opts.LocationLabel == "" {
		opts.LocationLabel = "REGION"
	}

	if opts.FailedOnly {
		failed := make([]findings.Finding, 0, len(fs))
		for _, f := range fs {
			if f.Status == "FAIL" {
				failed = append(failed, f)
			}
		}
		fs = failed
	}

	if len(fs) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}

	// Fixed column display widths.
	const (
		wCheck    = 45
		wResource = 30
		wLocation = 15
		wStatus   = 6
		wSeverity = 10
		wMessage  = 55
	)

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s  %-*s",
		wCheck, "CHECK ID",
		wResource, "RESOURCE ID",
		wLocation, opts.LocationLabel,
		wStatus, "STATUS",
		wSeverity, "SEVERITY",
		wMessage, "MESSAGE",
	)

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, f := range fs {
		var rb strings.Builder
		rb.WriteString(fmt.Sprintf("%-*s", wCheck, truncateField(f.CheckID, wCheck)))
		rb.WriteString(fmt.Sprintf("  %-*s", wResource, truncateField(f.ResourceID, wResource)))
		rb.WriteString(fmt.Sprintf("  %-*s", wLocation, truncateField(f.Region, wLocation)))
		rb.WriteString("  " + statusCell(f.Status, wStatus, opts.Colored))
		rb.WriteString("  " + severityCell(f.Severity, wSeverity, opts.Colored))
		rb.WriteString(fmt.Sprintf("  %-*s", wMessage, ShortenMessage(f.StatusExtended, wMessage)))
		fmt.Fprintln(w, rb.String())
	}
}
