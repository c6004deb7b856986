package rules

import (
	"fmt"
	"regexp"

	"github.com/styleguard/styleguard/pkg/document"
)

// pxLiteral matches a numeric length with a px unit, avoiding matches
// inside longer identifiers.
var pxLiteral = regexp.MustCompile(`(^|[\s:(,])(-?\d+(?:\.\d+)?)px\b`)

func noFixedPixelLengthRule() Rule {
	return Rule{
		ID:          "no-fixed-pixel-length",
		Languages:   []string{"css", "scss"},
		Description: "Length literals should use rem/em/%, not px, outside the root font-size",
		Hint:        "divide by the root font-size and use rem, or em for sizes relative to the local font",
		Check:       checkNoFixedPixelLength,
	}
}

func checkNoFixedPixelLength(s document.Snippet) []Finding {
	var findings []Finding
	for _, block := range scanBlocks(s.Text) {
		if block.RootScoped {
			// The root font-size declaration is the one place the guide
			// allows an absolute px anchor.
			continue
		}
		for _, decl := range block.Decls {
			findings = append(findings, pxViolations(decl)...)
		}
	}
	return findings
}

// pxViolations flags each px literal in one declaration value
func pxViolations(decl styleDecl) []Finding {
	var findings []Finding
	for _, m := range pxLiteral.FindAllStringSubmatch(decl.Value, -1) {
		findings = append(findings, Finding{
			Line:    decl.Line,
			Message: fmt.Sprintf("'%s: %spx' uses a fixed pixel length; prefer rem or em", decl.Property, m[2]),
		})
	}
	return findings
}
