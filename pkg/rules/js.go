package rules

import (
	"regexp"
	"strings"

	"github.com/styleguard/styleguard/pkg/document"
)

// varDecl matches a var declaration at statement position
var varDecl = regexp.MustCompile(`(^|[\s;({])var\s+([A-Za-z_$][A-Za-z0-9_$]*)`)

func noVarRule() Rule {
	return Rule{
		ID:          "no-var",
		Languages:   []string{"js"},
		Description: "Script examples must declare with const or let, not var",
		Hint:        "use const by default, let when the binding is reassigned",
		Check:       checkNoVar,
	}
}

func checkNoVar(s document.Snippet) []Finding {
	var findings []Finding
	inBlockComment := false
	for i, line := range s.Lines() {
		code := stripComments(line, &inBlockComment)
		// Crude string-literal guard: ignore lines where var only appears
		// after a quote opens.
		if idx := strings.Index(code, "var "); idx >= 0 {
			if strings.Count(code[:idx], `"`)%2 == 1 || strings.Count(code[:idx], "'")%2 == 1 || strings.Count(code[:idx], "`")%2 == 1 {
				continue
			}
		}
		for _, m := range varDecl.FindAllStringSubmatch(code, -1) {
			findings = append(findings, Finding{
				Line:    i,
				Message: "'var " + m[2] + "' should be const or let",
			})
		}
	}
	return findings
}
