package engine

import (
	"reflect"
	"testing"

	"github.com/styleguard/styleguard/pkg/document"
	"github.com/styleguard/styleguard/pkg/rules"
)

func mustDoc(t *testing.T, path, content string) *document.Document {
	t.Helper()
	doc, err := document.New(path, content)
	if err != nil {
		t.Fatalf("document.New(%s) unexpected error: %v", path, err)
	}
	return doc
}

func TestRunCleanInput(t *testing.T) {
	docs := []*document.Document{
		mustDoc(t, "a.md", "# Guide\n\nNo fences here.\n"),
		mustDoc(t, "b.md", "```css\n.button { color: red; }\n```\n"),
	}

	result := Run(docs, rules.Builtin(), nil)

	if len(result.Violations) != 0 || len(result.RuleErrors) != 0 || len(result.ParseErrors) != 0 {
		t.Fatalf("Run() = %+v, want clean result", result)
	}
	if result.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", result.ExitCode())
	}
	if result.FilesLinted != 2 || result.SnippetsLinted != 1 {
		t.Errorf("counts = %d files, %d snippets; want 2, 1", result.FilesLinted, result.SnippetsLinted)
	}
}

func TestRunViolationPositions(t *testing.T) {
	content := "# Guide\n\n```css\n.button { width: 12px; }\n```\n"
	result := Run([]*document.Document{mustDoc(t, "a.md", content)}, rules.Builtin(), nil)

	if len(result.Violations) != 1 {
		t.Fatalf("Run() = %d violations %v, want 1", len(result.Violations), result.Violations)
	}
	v := result.Violations[0]
	if v.Rule != "no-fixed-pixel-length" {
		t.Errorf("violation rule = %q, want no-fixed-pixel-length", v.Rule)
	}
	// Fence opens at line 3, the declaration is the first body line
	if v.Line != 4 {
		t.Errorf("violation line = %d, want 4", v.Line)
	}
	if result.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", result.ExitCode())
	}
	if len(v.Context) != 3 {
		t.Errorf("context = %v, want 3 centered lines", v.Context)
	}
}

func TestRunUnterminatedFence(t *testing.T) {
	content := "```css\n.button { width: 12px; }\n"
	result := Run([]*document.Document{mustDoc(t, "a.md", content)}, rules.Builtin(), nil)

	if len(result.ParseErrors) != 1 {
		t.Fatalf("Run() = %d parse errors, want 1", len(result.ParseErrors))
	}
	if len(result.Violations) != 0 {
		t.Errorf("Run() = %d violations from a broken file, want 0", len(result.Violations))
	}
	if result.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", result.ExitCode())
	}
}

func TestRunSkipsUntaggedSnippets(t *testing.T) {
	content := "```\n.Button { width: 12px; }\n```\n"
	result := Run([]*document.Document{mustDoc(t, "a.md", content)}, rules.Builtin(), nil)

	if len(result.Violations) != 0 {
		t.Errorf("untagged snippet produced violations: %v", result.Violations)
	}
	if result.SnippetsLinted != 1 {
		t.Errorf("SnippetsLinted = %d, want 1 (extracted but not checked)", result.SnippetsLinted)
	}
}

func TestRunLintDisabledDocument(t *testing.T) {
	content := "---\nlint: false\n---\n\n```css\n.Button { width: 12px; }\n```\n"
	result := Run([]*document.Document{mustDoc(t, "a.md", content)}, rules.Builtin(), nil)

	if len(result.Violations) != 0 {
		t.Errorf("opted-out document produced violations: %v", result.Violations)
	}
	if result.FilesLinted != 0 {
		t.Errorf("FilesLinted = %d, want 0", result.FilesLinted)
	}
}

func TestRunOrderingAcrossFiles(t *testing.T) {
	// Feed files in reverse lexical order; the report must sort them
	docs := []*document.Document{
		mustDoc(t, "z.md", "```css\n.Bad { color: red; }\n```\n"),
		mustDoc(t, "a.md", "```css\n.Worse { color: red; }\n```\n"),
	}

	result := Run(docs, rules.Builtin(), nil)
	if len(result.Violations) != 2 {
		t.Fatalf("Run() = %d violations, want 2", len(result.Violations))
	}
	if result.Violations[0].File != "a.md" || result.Violations[1].File != "z.md" {
		t.Errorf("violations ordered %q, %q; want a.md first",
			result.Violations[0].File, result.Violations[1].File)
	}
}

func TestRunDeterministic(t *testing.T) {
	docs := []*document.Document{
		mustDoc(t, "a.md", "```css\n.Bad { width: 4px; }\n```\n"),
		mustDoc(t, "b.md", "```scss\n$Gap: 2px;\n```\n"),
		mustDoc(t, "c.md", "```html\n<div style=\"width: 1px\" class=\"X\">x</div>\n```\n"),
	}

	first := Run(docs, rules.Builtin(), nil)
	second := Run(docs, rules.Builtin(), nil)

	if !reflect.DeepEqual(first.Violations, second.Violations) {
		t.Errorf("violations differ between identical runs:\n%v\n%v", first.Violations, second.Violations)
	}
}

func TestRunRecoversPanickingRule(t *testing.T) {
	panicky := rules.Rule{
		ID:          "panicky",
		Languages:   []string{"css"},
		Description: "always panics",
		Check: func(s document.Snippet) []rules.Finding {
			panic("boom")
		},
	}
	ruleSet := append(rules.Builtin(), panicky)

	content := "```css\n.button { width: 12px; }\n```\n"
	result := Run([]*document.Document{mustDoc(t, "a.md", content)}, ruleSet, nil)

	if len(result.RuleErrors) != 1 {
		t.Fatalf("Run() = %d rule errors, want 1", len(result.RuleErrors))
	}
	if result.RuleErrors[0].Rule != "panicky" {
		t.Errorf("rule error rule = %q, want panicky", result.RuleErrors[0].Rule)
	}
	// The other rules still contributed their findings
	if len(result.Violations) != 1 {
		t.Errorf("Run() = %d violations, want 1 despite the panicking rule", len(result.Violations))
	}
	if result.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", result.ExitCode())
	}
}

func TestExitCodePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   int
	}{
		{"clean", Result{}, 0},
		{"violations only", Result{Violations: []Violation{{}}}, 1},
		{"rule error dominates", Result{Violations: []Violation{{}}, RuleErrors: []RuleError{{}}}, 2},
		{"parse error dominates", Result{ParseErrors: []*document.ParseError{{}}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
