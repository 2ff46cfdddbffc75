package outputs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/deepak-negi-devops/cloudvet/internal/checks"
	"github.com/deepak-negi-devops/cloudvet/internal/findings"
)

func renderToString(fs []findings.Finding, opts TableOptions) string {
	var buf bytes.Buffer
	RenderTable(&buf, fs, opts)
	return buf.String()
}

func tableFinding(overrides ...func(*findings.Finding)) findings.Finding {
	f := findings.Finding{
		CheckID:        "s3_bucket_public_access",
		ResourceID:     "logs",
		Region:         "us-east-1",
		Status:         "FAIL",
		Severity:       checks.SeverityCritical,
		StatusExtended: "S3 Bucket logs is publicly accessible.",
	}
	for _, fn := range overrides {
		fn(&f)
	}
	return f
}

// TestRenderTable_Columns verifies header and row content.
func TestRenderTable_Columns(t *testing.T) {
	out := renderToString([]findings.Finding{tableFinding()}, TableOptions{})

	for _, want := range []string{"CHECK ID", "RESOURCE ID", "REGION", "STATUS", "SEVERITY", "MESSAGE",
		"s3_bucket_public_access", "logs", "us-east-1", "FAIL", "critical"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\ngot:\n%s", want, out)
		}
	}
}

// TestRenderTable_LocationLabel verifies the namespace header for cluster scans.
func TestRenderTable_LocationLabel(t *testing.T) {
	out := renderToString([]findings.Finding{tableFinding()}, TableOptions{LocationLabel: "NAMESPACE"})
	if !strings.Contains(out, "NAMESPACE") || strings.Contains(out, "REGION") {
		t.Errorf("location label not applied\ngot:\n%s", out)
	}
}

// TestRenderTable_FailedOnly verifies PASS rows are hidden.
func TestRenderTable_FailedOnly(t *testing.T) {
	fs := []findings.Finding{
		tableFinding(),
		tableFinding(func(f *findings.Finding) {
			f.ResourceID = "private"
			f.Status = "PASS"
		}),
	}

	out := renderToString(fs, TableOptions{FailedOnly: true})
	if !strings.Contains(out, "logs") {
		t.Errorf("FAIL row missing\ngot:\n%s", out)
	}
	if strings.Contains(out, "private") {
		t.Errorf("PASS row shown despite FailedOnly\ngot:\n%s", out)
	}
}

// TestRenderTable_FailedOnlyAllPassed verifies the empty message.
func TestRenderTable_FailedOnlyAllPassed(t *testing.T) {
	fs := []findings.Finding{tableFinding(func(f *findings.Finding) { f.Status = "PASS" })}
	out := renderToString(fs, TableOptions{FailedOnly: true})
	if !strings.Contains(out, "No findings.") {
		t.Errorf("want 'No findings.' when everything passed\ngot:\n%s", out)
	}
}

// TestRenderTable_Empty verifies the no-findings message.
func TestRenderTable_Empty(t *testing.T) {
	if out := renderToString(nil, TableOptions{}); !strings.Contains(out, "No findings.") {
		t.Errorf("want 'No findings.'\ngot:\n%s", out)
	}
}

// TestRenderTable_Colored verifies ANSI codes appear only when enabled.
func TestRenderTable_Colored(t *testing.T) {
	fs := []findings.Finding{tableFinding()}

	plain := renderToString(fs, TableOptions{})
	if strings.Contains(plain, "\033[") {
		t.Errorf("uncolored output contains ANSI codes\ngot:\n%q", plain)
	}

	colored := renderToString(fs, TableOptions{Colored: true})
	if !strings.Contains(colored, ansiBoldRed+"critical"+ansiReset) {
		t.Errorf("colored output missing bold-red critical\ngot:\n%q", colored)
	}
	if !strings.Contains(colored, ansiRed+"FAIL"+ansiReset) {
		t.Errorf("colored output missing red FAIL\ngot:\n%q", colored)
	}
}

// TestShortenMessage verifies rune-safe truncation with ellipsis.
func TestShortenMessage(t *testing.T) {
	if got := ShortenMessage("short", 10); got != "short" {
		t.Errorf("ShortenMessage(short) = %q", got)
	}
	got := ShortenMessage("a very long finding message", 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "...") {
		t.Errorf("ShortenMessage = %q; want 10 runes ending in ...", got)
	}
}
