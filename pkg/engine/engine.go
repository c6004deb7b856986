// Package engine applies a rule set to extracted snippets and aggregates
// the findings into one deterministic result.
package engine

import (
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/styleguard/styleguard/pkg/constants"
	"github.com/styleguard/styleguard/pkg/document"
	"github.com/styleguard/styleguard/pkg/rules"
)

// MaxConcurrentFiles bounds the linting pool. Documents are small, so the
// bound mostly keeps file handles and memory flat on huge trees.
const MaxConcurrentFiles = 8

// Violation is one rule finding located in a source file
type Violation struct {
	Rule    string
	File    string
	Line    int // 1-based file line
	Column  int
	Message string
	Hint    string
	Context []string // surrounding source lines, centered on Line
}

// RuleError records a check that panicked on a snippet. It is reported
// alongside violations but escalates the exit code.
type RuleError struct {
	Rule    string
	File    string
	Line    int
	Message string
}

// Result aggregates one run. Slices are sorted deterministically: a re-run
// over unchanged input renders byte-identical output.
type Result struct {
	Violations  []Violation
	RuleErrors  []RuleError
	ParseErrors []*document.ParseError

	FilesLinted    int
	SnippetsLinted int
}

// ExitCode maps the result onto the process exit status: errors dominate
// violations.
func (r *Result) ExitCode() int {
	if len(r.ParseErrors) > 0 || len(r.RuleErrors) > 0 {
		return constants.ExitErrors
	}
	if len(r.Violations) > 0 {
		return constants.ExitViolations
	}
	return constants.ExitClean
}

// fileResult is the per-document unit of work returned by the pool
type fileResult struct {
	violations []Violation
	ruleErrors []RuleError
	parseErr   *document.ParseError
	snippets   int
	skipped    bool
}

// Run lints every document with every applicable rule. Files are processed
// concurrently; ordering is restored by the final sort, so concurrency is
// never observable in the output.
func Run(docs []*document.Document, ruleSet []rules.Rule, parseErrs []*document.ParseError) *Result {
	p := pool.NewWithResults[fileResult]().WithMaxGoroutines(MaxConcurrentFiles)

	for _, doc := range docs {
		doc := doc // capture loop variable
		p.Go(func() fileResult {
			return lintDocument(doc, ruleSet)
		})
	}

	results := p.Wait()

	result := &Result{}
	result.ParseErrors = append(result.ParseErrors, parseErrs...)
	for _, fr := range results {
		if fr.skipped {
			continue
		}
		result.FilesLinted++
		result.SnippetsLinted += fr.snippets
		result.Violations = append(result.Violations, fr.violations...)
		result.RuleErrors = append(result.RuleErrors, fr.ruleErrors...)
		if fr.parseErr != nil {
			result.ParseErrors = append(result.ParseErrors, fr.parseErr)
		}
	}

	sortResult(result)
	return result
}

// lintDocument extracts snippets from one document and applies the rule
// set. A parse error discards the document's snippets entirely; a
// panicking rule loses only that rule's contribution for that snippet.
func lintDocument(doc *document.Document, ruleSet []rules.Rule) fileResult {
	if doc.LintDisabled() {
		return fileResult{skipped: true}
	}

	snippets, perr := document.ExtractSnippets(doc)
	if perr != nil {
		return fileResult{parseErr: perr}
	}

	fr := fileResult{snippets: len(snippets)}
	for _, snippet := range snippets {
		for _, rule := range ruleSet {
			if !rule.AppliesTo(snippet.Lang) {
				continue
			}
			findings, err := applyRule(rule, snippet)
			if err != nil {
				fr.ruleErrors = append(fr.ruleErrors, RuleError{
					Rule:    rule.ID,
					File:    snippet.File,
					Line:    snippet.StartLine,
					Message: err.Error(),
				})
				continue
			}
			for _, f := range findings {
				fr.violations = append(fr.violations, toViolation(doc, rule, snippet, f))
			}
		}
	}
	return fr
}

// applyRule runs one check, converting a panic into an error so a broken
// rule cannot take down the run.
func applyRule(rule rules.Rule, snippet document.Snippet) (findings []rules.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("rule '%s' failed on snippet at line %d: %v", rule.ID, snippet.StartLine, r)
		}
	}()
	return rule.Check(snippet), nil
}

// toViolation resolves a snippet-relative finding to a file position with
// surrounding context lines.
func toViolation(doc *document.Document, rule rules.Rule, snippet document.Snippet, f rules.Finding) Violation {
	line := snippet.StartLine
	if f.Line >= 0 {
		// Body starts on the line after the opening fence
		line = snippet.StartLine + 1 + f.Line
	}

	return Violation{
		Rule:    rule.ID,
		File:    snippet.File,
		Line:    line,
		Column:  f.Column,
		Message: f.Message,
		Hint:    rule.Hint,
		Context: contextLines(doc.Lines, line),
	}
}

// contextLines returns the three lines centered on line. The console
// renderer assumes a centered window, so edges yield no context at all.
func contextLines(lines []string, line int) []string {
	idx := line - 1
	if idx-1 < 0 || idx+1 >= len(lines) {
		return nil
	}
	context := make([]string, 3)
	copy(context, lines[idx-1:idx+2])
	return context
}

// sortResult orders every slice by (file, line, rule id) so output is
// stable regardless of pool scheduling.
func sortResult(r *Result) {
	sort.Slice(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
	sort.Slice(r.RuleErrors, func(i, j int) bool {
		a, b := r.RuleErrors[i], r.RuleErrors[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
	sort.Slice(r.ParseErrors, func(i, j int) bool {
		a, b := r.ParseErrors[i], r.ParseErrors[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
}
