package rules

import (
	"strings"
	"testing"

	"github.com/styleguard/styleguard/pkg/document"
)

func TestNoFixedPixelLength(t *testing.T) {
	rule := findRule(t, "no-fixed-pixel-length")

	tests := []struct {
		name      string
		lang      string
		source    string
		wantCount int
	}{
		{
			name:      "px width",
			lang:      "css",
			source:    ".button { width: 12px; }",
			wantCount: 1,
		},
		{
			name:      "rem is fine",
			lang:      "css",
			source:    ".button { width: 0.75rem; padding: 1em; }",
			wantCount: 0,
		},
		{
			name:      "root font-size is allowed",
			lang:      "css",
			source:    ":root { font-size: 16px; }",
			wantCount: 0,
		},
		{
			name:      "html selector is root scoped",
			lang:      "css",
			source:    "html { font-size: 16px; }",
			wantCount: 0,
		},
		{
			name:      "multi-line html group stays root scoped",
			lang:      "scss",
			source:    "html,\nbody {\n  font-size: 16px;\n}",
			wantCount: 0,
		},
		{
			name:      "nested under root stays allowed",
			lang:      "scss",
			source:    ":root {\n  font-size: 16px;\n  .inner { margin: 4px; }\n}",
			wantCount: 0,
		},
		{
			name:      "two px literals in one value",
			lang:      "css",
			source:    ".card { margin: 4px 8px; }",
			wantCount: 2,
		},
		{
			name:      "sass variable holding px",
			lang:      "scss",
			source:    "$gutter: 16px;",
			wantCount: 1,
		},
		{
			name:      "px inside identifier is not a length",
			lang:      "css",
			source:    ".button { background: url(sprite-2px.png); font: pxgrid; }",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := rule.Check(document.Snippet{File: "guide.md", StartLine: 1, Lang: tt.lang, Text: tt.source})
			if len(findings) != tt.wantCount {
				t.Fatalf("Check() = %d findings %v, want %d", len(findings), findings, tt.wantCount)
			}
		})
	}
}

func TestNoFixedPixelLengthMessage(t *testing.T) {
	rule := findRule(t, "no-fixed-pixel-length")

	findings := rule.Check(document.Snippet{File: "guide.md", StartLine: 1, Lang: "css", Text: ".button { width: 12px; }"})
	if len(findings) != 1 {
		t.Fatalf("Check() = %d findings, want 1", len(findings))
	}
	msg := findings[0].Message
	if !strings.Contains(msg, "12px") || !strings.Contains(msg, "rem") {
		t.Errorf("message %q should cite the literal and suggest rem", msg)
	}
}
