// Package rules provides the built-in style checks applied to documentation
// snippets: BEM class naming, relative length units, Sass variable hygiene,
// and a few guardrails for HTML and JS examples.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/styleguard/styleguard/pkg/constants"
	"github.com/styleguard/styleguard/pkg/document"
)

// Finding is one violation located inside a snippet body.
type Finding struct {
	// Line is the 0-based offset into the snippet body, -1 when the check
	// cannot attribute the finding to a specific line.
	Line int
	// Column is 1-based, 0 when unknown.
	Column  int
	Message string
}

// Rule is a named, pure check over snippet text. Checks must not touch
// global state or perform I/O; the engine may run them concurrently.
type Rule struct {
	ID          string
	Languages   []string // fence tags the rule applies to
	Description string
	Hint        string
	Check       func(s document.Snippet) []Finding
}

// AppliesTo reports whether the rule covers the given language tag.
// Untagged snippets (empty lang) match no rule.
func (r Rule) AppliesTo(lang string) bool {
	if lang == "" {
		return false
	}
	for _, l := range r.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Builtin returns the full rule set in identifier order. The slice is
// rebuilt on every call so callers can narrow it without aliasing.
func Builtin() []Rule {
	rs := []Rule{
		bemNamingRule(),
		noFixedPixelLengthRule(),
		noImportantRule(),
		noIDSelectorRule(),
		scssVariableNamingRule(),
		maxNestingDepthRule(defaultMaxNesting),
		noInlineStyleRule(),
		noVarRule(),
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
	return rs
}

// Options tunes rule construction from configuration.
type Options struct {
	// MaxNesting overrides the depth limit of max-nesting-depth when > 0.
	MaxNesting int
}

// BuiltinWithOptions returns the rule set with configuration applied
func BuiltinWithOptions(opts Options) []Rule {
	rs := Builtin()
	if opts.MaxNesting > 0 {
		for i := range rs {
			if rs[i].ID == "max-nesting-depth" {
				rs[i] = maxNestingDepthRule(opts.MaxNesting)
			}
		}
		sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
	}
	return rs
}

// Select narrows the rule set to the given identifiers. Order of ids does
// not matter; the result keeps identifier order. An unknown identifier is
// a configuration error.
func Select(all []Rule, ids []string) ([]Rule, error) {
	if len(ids) == 0 {
		return all, nil
	}

	known := make(map[string]Rule, len(all))
	for _, r := range all {
		known[r.ID] = r
	}

	seen := make(map[string]bool, len(ids))
	var selected []Rule
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		r, ok := known[id]
		if !ok {
			return nil, fmt.Errorf("unknown rule identifier '%s' (run '%s rules' to list available rules)", id, constants.CLIName)
		}
		seen[id] = true
		selected = append(selected, r)
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i].ID < selected[j].ID })
	return selected, nil
}
