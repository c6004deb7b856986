package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/styleguard/styleguard/pkg/document"
)

// idToken matches an #id in selector position. Hex colors never appear in
// selectors, so the scanner's selector split keeps this unambiguous.
var idToken = regexp.MustCompile(`#([A-Za-z][A-Za-z0-9_-]*)`)

func noIDSelectorRule() Rule {
	return Rule{
		ID:          "no-id-selector",
		Languages:   []string{"css", "scss"},
		Description: "Style examples must not target #id selectors",
		Hint:        "style through classes so rules stay reusable and low-specificity",
		Check:       checkNoIDSelector,
	}
}

func checkNoIDSelector(s document.Snippet) []Finding {
	var findings []Finding
	for _, block := range scanBlocks(s.Text) {
		for _, sel := range block.Selectors {
			for _, m := range idToken.FindAllStringSubmatch(sel, -1) {
				findings = append(findings, Finding{
					Line:    block.Line,
					Message: fmt.Sprintf("selector targets id '#%s'", m[1]),
				})
			}
		}
	}
	return findings
}

// scssVarName matches a Sass variable declaration property like $grid-gap
var scssVarName = regexp.MustCompile(`^\$[a-z][a-z0-9]*(?:-[a-z0-9]+)*$`)

func scssVariableNamingRule() Rule {
	return Rule{
		ID:          "scss-variable-naming",
		Languages:   []string{"scss"},
		Description: "Sass variables must use lowercase kebab-case names",
		Hint:        "rename like $color-primary or $spacing-lg",
		Check:       checkSCSSVariableNaming,
	}
}

func checkSCSSVariableNaming(s document.Snippet) []Finding {
	var findings []Finding
	for _, block := range scanBlocks(s.Text) {
		for _, decl := range block.Decls {
			if !strings.HasPrefix(decl.Property, "$") {
				continue
			}
			if !scssVarName.MatchString(decl.Property) {
				findings = append(findings, Finding{
					Line:    decl.Line,
					Message: fmt.Sprintf("Sass variable '%s' is not lowercase kebab-case", decl.Property),
				})
			}
		}
	}
	return findings
}

const defaultMaxNesting = 3

func maxNestingDepthRule(limit int) Rule {
	return Rule{
		ID:          "max-nesting-depth",
		Languages:   []string{"scss"},
		Description: fmt.Sprintf("Selector nesting must not exceed %d levels", limit),
		Hint:        "flatten with BEM class names instead of mirroring the DOM in nesting",
		Check: func(s document.Snippet) []Finding {
			var findings []Finding
			for _, block := range scanBlocks(s.Text) {
				if block.Depth > limit {
					findings = append(findings, Finding{
						Line: block.Line,
						Message: fmt.Sprintf("selector '%s' is nested %d levels deep (limit %d)",
							strings.Join(block.Selectors, ", "), block.Depth, limit),
					})
				}
			}
			return findings
		},
	}
}
