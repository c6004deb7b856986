package rules

import (
	"fmt"

	"github.com/aymerick/douceur/parser"

	"github.com/styleguard/styleguard/pkg/document"
)

func noImportantRule() Rule {
	return Rule{
		ID:          "no-important",
		Languages:   []string{"css", "scss"},
		Description: "Declarations must not rely on !important",
		Hint:        "raise selector specificity or reorder the cascade instead",
		Check:       checkNoImportant,
	}
}

func checkNoImportant(s document.Snippet) []Finding {
	// The CSS parser knows the important flag directly; Sass source falls
	// back to the scanner's value inspection.
	if s.Lang == "css" {
		if sheet, err := parser.Parse(s.Text); err == nil {
			lines := s.Lines()
			var findings []Finding
			for _, r := range flattenRules(sheet.Rules) {
				for _, decl := range r.Declarations {
					if decl.Important {
						findings = append(findings, Finding{
							Line:    locateLine(lines, decl.Property+":"),
							Message: fmt.Sprintf("'%s' uses !important", decl.Property),
						})
					}
				}
			}
			return findings
		}
	}

	var findings []Finding
	for _, block := range scanBlocks(s.Text) {
		for _, decl := range block.Decls {
			if decl.Important {
				findings = append(findings, Finding{
					Line:    decl.Line,
					Message: fmt.Sprintf("'%s' uses !important", decl.Property),
				})
			}
		}
	}
	return findings
}
