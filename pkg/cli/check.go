package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/styleguard/styleguard/pkg/config"
	"github.com/styleguard/styleguard/pkg/console"
	"github.com/styleguard/styleguard/pkg/document"
	"github.com/styleguard/styleguard/pkg/engine"
	"github.com/styleguard/styleguard/pkg/rules"
)

// Package-level version information
var (
	version = "dev"
)

// SetVersionInfo sets the version string rendered by the version command
func SetVersionInfo(v string) {
	version = v
}

// Version returns the current version string
func Version() string {
	return version
}

// CheckOptions carries the check command's flags
type CheckOptions struct {
	Path       string
	RuleIDs    []string // --rules, comma-split by the caller
	Format     string   // "text" or "json"
	ConfigPath string   // explicit --config, empty for discovery
	Verbose    bool
}

// RunCheck lints a file or directory tree and renders the report. The
// returned int is the process exit code; a non-nil error is a fatal
// configuration problem detected before any Markdown was read.
func RunCheck(opts CheckOptions) (int, error) {
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Format == "" {
		opts.Format = "text"
	}
	if opts.Format != "text" && opts.Format != "json" {
		return 0, fmt.Errorf("invalid format '%s': must be 'text' or 'json'", opts.Format)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return 0, err
	}

	ruleSet, err := activeRules(cfg, opts.RuleIDs)
	if err != nil {
		return 0, err
	}

	if opts.Verbose {
		ids := make([]string, 0, len(ruleSet))
		for _, r := range ruleSet {
			ids = append(ids, r.ID)
		}
		fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("Active rules: %s", strings.Join(ids, ", "))))
	}

	spinner := console.NewSpinner(fmt.Sprintf("Linting %s...", opts.Path))
	if !opts.Verbose && opts.Format == "text" {
		spinner.Start()
	}

	docs, parseErrs, err := document.LoadTree(opts.Path, cfg.Exclude)
	if err != nil {
		spinner.Stop()
		return 0, err
	}

	result := engine.Run(docs, ruleSet, parseErrs)
	spinner.Stop()

	if opts.Verbose {
		for _, doc := range docs {
			title := doc.Title()
			if title == "" {
				title = "(untitled)"
			}
			fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("%s: %s", console.ToRelativePath(doc.Path), title)))
		}
	}

	switch opts.Format {
	case "json":
		if err := renderJSON(result); err != nil {
			return 0, err
		}
	default:
		renderText(result)
	}

	return result.ExitCode(), nil
}

// loadConfig resolves the configuration for a run
func loadConfig(opts CheckOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}
	return config.Discover(opts.Path)
}

// activeRules builds the rule set from config and narrows it with --rules.
// Flag identifiers are validated against the full built-in set first, so an
// unknown id is fatal even when the config already narrowed the set.
func activeRules(cfg *config.Config, flagIDs []string) ([]rules.Rule, error) {
	all := rules.BuiltinWithOptions(rules.Options{MaxNesting: cfg.MaxNesting})

	set, err := rules.Select(all, cfg.Rules)
	if err != nil {
		return nil, err
	}

	if len(flagIDs) == 0 {
		return set, nil
	}
	requested, err := rules.Select(all, flagIDs)
	if err != nil {
		return nil, err
	}

	enabled := make(map[string]bool, len(set))
	for _, r := range set {
		enabled[r.ID] = true
	}
	var intersection []rules.Rule
	for _, r := range requested {
		if enabled[r.ID] {
			intersection = append(intersection, r)
		}
	}
	return intersection, nil
}

// renderText prints the human-readable report, grouped by file
func renderText(result *engine.Result) {
	diagnostics := collectDiagnostics(result)

	if len(diagnostics) == 0 {
		fmt.Println(console.FormatSuccessMessage(fmt.Sprintf(
			"No style violations in %d files (%d snippets checked)",
			result.FilesLinted, result.SnippetsLinted)))
		return
	}

	// Group by file, keeping the sorted order within each group
	var files []string
	grouped := make(map[string][]console.Diagnostic)
	for _, d := range diagnostics {
		if _, seen := grouped[d.Position.File]; !seen {
			files = append(files, d.Position.File)
		}
		grouped[d.Position.File] = append(grouped[d.Position.File], d)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Println(console.FormatFileHeader(file, len(grouped[file])))
		for _, d := range grouped[file] {
			fmt.Print(console.FormatDiagnostic(d))
		}
		fmt.Println()
	}

	fmt.Println(console.FormatCountMessage(fmt.Sprintf(
		"%d violations, %d errors in %d files (%d snippets checked)",
		len(result.Violations),
		len(result.ParseErrors)+len(result.RuleErrors),
		result.FilesLinted, result.SnippetsLinted)))
}

// collectDiagnostics merges violations, parse errors, and rule errors into
// one renderable list ordered by (file, line, rule).
func collectDiagnostics(result *engine.Result) []console.Diagnostic {
	var diagnostics []console.Diagnostic

	for _, perr := range result.ParseErrors {
		diagnostics = append(diagnostics, console.Diagnostic{
			Position: console.Position{File: perr.File, Line: perr.Line},
			Severity: console.SeverityError,
			Message:  perr.Message,
		})
	}
	for _, rerr := range result.RuleErrors {
		diagnostics = append(diagnostics, console.Diagnostic{
			Position: console.Position{File: rerr.File, Line: rerr.Line},
			Severity: console.SeverityError,
			Rule:     rerr.Rule,
			Message:  rerr.Message,
		})
	}
	for _, v := range result.Violations {
		diagnostics = append(diagnostics, console.Diagnostic{
			Position: console.Position{File: v.File, Line: v.Line, Column: v.Column},
			Severity: console.SeverityWarning,
			Rule:     v.Rule,
			Message:  v.Message,
			Context:  v.Context,
			Hint:     v.Hint,
		})
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.Position.File != b.Position.File {
			return a.Position.File < b.Position.File
		}
		if a.Position.Line != b.Position.Line {
			return a.Position.Line < b.Position.Line
		}
		return a.Rule < b.Rule
	})
	return diagnostics
}

// jsonFinding is one entry in the machine-readable report
type jsonFinding struct {
	Rule     string `json:"rule,omitempty"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// jsonReport is the --format=json output document
type jsonReport struct {
	Findings []jsonFinding `json:"findings"`
	Summary  jsonSummary   `json:"summary"`
}

type jsonSummary struct {
	Files      int `json:"files"`
	Snippets   int `json:"snippets"`
	Violations int `json:"violations"`
	Errors     int `json:"errors"`
	ExitCode   int `json:"exit_code"`
}

// renderJSON prints the structured report. Findings keep the same ordering
// as the text report, so repeated runs are byte-identical.
func renderJSON(result *engine.Result) error {
	report := jsonReport{
		Findings: []jsonFinding{},
		Summary: jsonSummary{
			Files:      result.FilesLinted,
			Snippets:   result.SnippetsLinted,
			Violations: len(result.Violations),
			Errors:     len(result.ParseErrors) + len(result.RuleErrors),
			ExitCode:   result.ExitCode(),
		},
	}

	for _, d := range collectDiagnostics(result) {
		severity := "warning"
		if d.Severity == console.SeverityError {
			severity = "error"
		}
		report.Findings = append(report.Findings, jsonFinding{
			Rule:     d.Rule,
			File:     d.Position.File,
			Line:     d.Position.Line,
			Column:   d.Position.Column,
			Severity: severity,
			Message:  d.Message,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
