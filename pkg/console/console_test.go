package console

import (
	"strings"
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
	}
	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

// Tests run with stdout piped, so styling is disabled and the rendered
// output is plain text.

func TestFormatDiagnostic(t *testing.T) {
	d := Diagnostic{
		Position: Position{File: "docs/css.md", Line: 12, Column: 3},
		Severity: SeverityWarning,
		Rule:     "bem-naming",
		Message:  "class selector '.button__Text' does not follow BEM naming",
		Hint:     "use lowercase hyphen-delimited words",
	}

	out := FormatDiagnostic(d)

	for _, want := range []string{
		"docs/css.md:12:3:",
		"warning:",
		"[bem-naming]",
		"hint: use lowercase hyphen-delimited words",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDiagnostic() output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDiagnosticWithoutPosition(t *testing.T) {
	out := FormatDiagnostic(Diagnostic{
		Severity: SeverityError,
		Message:  "something broke",
	})

	if strings.Contains(out, ":0:0:") {
		t.Errorf("FormatDiagnostic() should omit the empty position: %s", out)
	}
	if !strings.HasPrefix(out, "error:") {
		t.Errorf("FormatDiagnostic() = %q, want error: prefix", out)
	}
}

func TestFormatDiagnosticContext(t *testing.T) {
	d := Diagnostic{
		Position: Position{File: "a.md", Line: 2, Column: 1},
		Severity: SeverityWarning,
		Message:  "msg",
		Context:  []string{"first", "second", "third"},
	}

	out := FormatDiagnostic(d)
	for _, want := range []string{"1 | first", "2 | second", "3 | third", "^"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDiagnostic() context missing %q:\n%s", want, out)
		}
	}
}

func TestFormatFileHeader(t *testing.T) {
	out := FormatFileHeader("docs/css.md", 1)
	if !strings.Contains(out, "docs/css.md") || !strings.Contains(out, "(1 finding)") {
		t.Errorf("FormatFileHeader() = %q", out)
	}

	out = FormatFileHeader("docs/css.md", 3)
	if !strings.Contains(out, "(3 findings)") {
		t.Errorf("FormatFileHeader() = %q, want plural findings", out)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(TableConfig{
		Title:   "Rules",
		Headers: []string{"ID", "Description"},
		Rows: [][]string{
			{"bem-naming", "BEM class names"},
			{"no-var", "const/let over var"},
		},
	})

	for _, want := range []string{"Rules", "ID", "bem-naming", "no-var"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTable() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if out := RenderTable(TableConfig{}); out != "" {
		t.Errorf("RenderTable() on empty config = %q, want empty", out)
	}
}

func TestToRelativePath(t *testing.T) {
	if got := ToRelativePath("already/relative.md"); got != "already/relative.md" {
		t.Errorf("ToRelativePath() = %q, want unchanged relative path", got)
	}
}

func TestNewSpinnerDisabledWithoutTTY(t *testing.T) {
	s := NewSpinner("working...")
	if s.IsEnabled() {
		t.Skip("running under a TTY; spinner behavior not asserted")
	}
	// Start/Stop must be safe no-ops when disabled
	s.Start()
	s.UpdateMessage("still working...")
	s.Stop()
}
