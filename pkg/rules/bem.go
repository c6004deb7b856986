package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/styleguard/styleguard/pkg/document"
)

// bemToken matches block, block__element, block--modifier, and
// block__element--modifier: lowercase hyphen-delimited words with at most
// one __ and at most one -- separator.
var bemToken = regexp.MustCompile(`^[a-z][a-z0-9]*(?:-[a-z0-9]+)*` +
	`(?:__[a-z][a-z0-9]*(?:-[a-z0-9]+)*)?` +
	`(?:--[a-z][a-z0-9]*(?:-[a-z0-9]+)*)?$`)

// classToken extracts class names from a selector, including chained and
// descendant classes.
var classToken = regexp.MustCompile(`\.([A-Za-z0-9_-]+)`)

// ValidBEMClass reports whether a single class name follows the BEM token
// grammar. Exported for the HTML rule, which checks class attributes with
// the same grammar.
func ValidBEMClass(class string) bool {
	return bemToken.MatchString(class)
}

func bemNamingRule() Rule {
	return Rule{
		ID:          "bem-naming",
		Languages:   []string{"css", "scss", "html"},
		Description: "Class names must follow block__element / block--modifier syntax",
		Hint:        "use lowercase hyphen-delimited words, one __ for the element, one -- for the modifier",
		Check:       checkBEMNaming,
	}
}

func checkBEMNaming(s document.Snippet) []Finding {
	if s.Lang == "html" {
		return checkHTMLClasses(s)
	}

	// Well-formed CSS goes through the real parser; Sass nesting falls
	// back to the tolerant scanner.
	if s.Lang == "css" {
		if sheet, err := parser.Parse(s.Text); err == nil {
			return bemFindingsFromStylesheet(s, sheet)
		}
	}

	var findings []Finding
	for _, block := range scanBlocks(s.Text) {
		for _, sel := range block.Selectors {
			findings = append(findings, bemViolations(sel, block.Line)...)
		}
	}
	return findings
}

// bemFindingsFromStylesheet walks a parsed stylesheet, including rules
// nested under at-rules, and checks every class selector.
func bemFindingsFromStylesheet(s document.Snippet, sheet *css.Stylesheet) []Finding {
	lines := s.Lines()

	var findings []Finding
	var walk func(rules []*css.Rule)
	walk = func(rules []*css.Rule) {
		for _, r := range rules {
			for _, sel := range r.Selectors {
				findings = append(findings, bemViolations(sel, locateLine(lines, sel))...)
			}
			walk(r.Rules)
		}
	}
	walk(sheet.Rules)
	return findings
}

// bemViolations checks every class token in one selector
func bemViolations(selector string, line int) []Finding {
	var findings []Finding
	for _, m := range classToken.FindAllStringSubmatch(selector, -1) {
		class := m[1]
		// Sass parent references produce partial tokens like "&__icon";
		// the scanner hands us the bare suffix, which is not a class name.
		if strings.HasPrefix(class, "__") || strings.HasPrefix(class, "--") {
			continue
		}
		if !ValidBEMClass(class) {
			findings = append(findings, Finding{
				Line:    line,
				Message: fmt.Sprintf("class selector '.%s' does not follow BEM naming", class),
			})
		}
	}
	return findings
}

// flattenRules expands at-rule bodies into one flat rule list
func flattenRules(rules []*css.Rule) []*css.Rule {
	var flat []*css.Rule
	for _, r := range rules {
		flat = append(flat, r)
		flat = append(flat, flattenRules(r.Rules)...)
	}
	return flat
}

// locateLine finds the first body line containing needle, -1 when absent.
// Used when the CSS parser reports no positions.
func locateLine(lines []string, needle string) int {
	needle = strings.TrimSpace(needle)
	for i, line := range lines {
		if strings.Contains(line, needle) {
			return i
		}
	}
	return -1
}
