package rules

import (
	"strings"
)

// styleDecl is one property declaration with its 0-based line offset
type styleDecl struct {
	Property  string
	Value     string
	Line      int
	Important bool
}

// styleBlock is one selector block found by the scanner. Depth starts at 1
// for top-level blocks; RootScoped is true when the block or any enclosing
// block targets :root or html.
type styleBlock struct {
	Selectors  []string
	Line       int
	Depth      int
	RootScoped bool
	Decls      []styleDecl
}

// scanState tracks one open block on the brace stack
type scanState struct {
	rootScoped bool
	atRule     bool
}

// rootSelector reports whether a selector group targets the document root
func rootSelector(selectors []string) bool {
	for _, sel := range selectors {
		sel = strings.TrimSpace(sel)
		if sel == "html" || sel == "html, body" || strings.Contains(sel, ":root") {
			return true
		}
	}
	return false
}

// splitSelectors splits a rule prelude on commas, trimming each part
func splitSelectors(prelude string) []string {
	parts := strings.Split(prelude, ",")
	selectors := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// stripComments removes /* */ and // comments from a single line. Block
// comments spanning lines are handled by the caller via the inComment flag.
func stripComments(line string, inComment *bool) string {
	var out strings.Builder
	i := 0
	for i < len(line) {
		if *inComment {
			end := strings.Index(line[i:], "*/")
			if end == -1 {
				return out.String()
			}
			i += end + 2
			*inComment = false
			continue
		}
		if strings.HasPrefix(line[i:], "/*") {
			*inComment = true
			i += 2
			continue
		}
		if strings.HasPrefix(line[i:], "//") {
			return out.String()
		}
		out.WriteByte(line[i])
		i++
	}
	return out.String()
}

// scanBlocks performs a tolerant line-based scan of CSS or SCSS source.
// It accepts Sass nesting that a strict CSS parser rejects, tracks brace
// depth, and attributes declarations to lines. At-rule bodies (@media,
// @supports) do not count toward selector nesting depth.
//
// Top-level declarations (Sass variable assignments like $gap: 16px) are
// collected into a synthetic block with Depth 0 and no selectors.
func scanBlocks(text string) []styleBlock {
	var blocks []styleBlock
	var stack []scanState

	topLevel := styleBlock{Depth: 0}
	inComment := false

	// pendingPrelude carries selector text from lines that end before the
	// opening brace, so multi-line selector groups keep every selector
	var pendingPrelude string

	// current maps an open selector block to its index in blocks; -1 when
	// the innermost open brace belongs to an at-rule
	var openBlocks []int

	depth := func() int {
		d := 0
		for _, s := range stack {
			if !s.atRule {
				d++
			}
		}
		return d
	}
	rootScoped := func() bool {
		for _, s := range stack {
			if s.rootScoped {
				return true
			}
		}
		return false
	}

	for lineNo, raw := range strings.Split(text, "\n") {
		line := stripComments(raw, &inComment)

		for len(line) > 0 {
			openIdx := strings.Index(line, "{")
			closeIdx := strings.Index(line, "}")
			semiIdx := strings.Index(line, ";")

			switch {
			case openIdx != -1 && (closeIdx == -1 || openIdx < closeIdx) && (semiIdx == -1 || openIdx < semiIdx):
				prelude := strings.TrimSpace(line[:openIdx])
				if pendingPrelude != "" {
					prelude = strings.TrimSpace(pendingPrelude + " " + prelude)
					pendingPrelude = ""
				}
				line = line[openIdx+1:]
				if strings.HasPrefix(prelude, "@") {
					stack = append(stack, scanState{atRule: true})
					openBlocks = append(openBlocks, -1)
					continue
				}
				selectors := splitSelectors(prelude)
				block := styleBlock{
					Selectors:  selectors,
					Line:       lineNo,
					Depth:      depth() + 1,
					RootScoped: rootScoped() || rootSelector(selectors),
				}
				stack = append(stack, scanState{rootScoped: block.RootScoped})
				blocks = append(blocks, block)
				openBlocks = append(openBlocks, len(blocks)-1)

			case semiIdx != -1 && (closeIdx == -1 || semiIdx < closeIdx):
				stmt := strings.TrimSpace(line[:semiIdx])
				line = line[semiIdx+1:]
				pendingPrelude = ""
				if decl, ok := parseDecl(stmt, lineNo); ok {
					if n := len(openBlocks); n > 0 && openBlocks[n-1] != -1 {
						idx := openBlocks[n-1]
						blocks[idx].Decls = append(blocks[idx].Decls, decl)
					} else {
						topLevel.Decls = append(topLevel.Decls, decl)
					}
				}

			case closeIdx != -1:
				line = line[closeIdx+1:]
				pendingPrelude = ""
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
					openBlocks = openBlocks[:len(openBlocks)-1]
				}

			default:
				// Declaration without trailing semicolon, or a selector
				// group continuing onto the next line
				stmt := strings.TrimSpace(line)
				if decl, ok := parseDecl(stmt, lineNo); ok && !strings.HasSuffix(stmt, ",") {
					if n := len(openBlocks); n > 0 && openBlocks[n-1] != -1 {
						idx := openBlocks[n-1]
						blocks[idx].Decls = append(blocks[idx].Decls, decl)
					} else {
						topLevel.Decls = append(topLevel.Decls, decl)
					}
					pendingPrelude = ""
				} else if stmt != "" {
					pendingPrelude = strings.TrimSpace(pendingPrelude + " " + stmt)
				}
				line = ""
			}
		}
	}

	if len(topLevel.Decls) > 0 {
		blocks = append([]styleBlock{topLevel}, blocks...)
	}
	return blocks
}

// parseDecl parses "property: value" into a styleDecl. Selectors that the
// scanner mistakes for statements (no colon, or at-rules) are rejected.
func parseDecl(stmt string, line int) (styleDecl, bool) {
	if stmt == "" || strings.HasPrefix(stmt, "@") {
		return styleDecl{}, false
	}
	colon := strings.Index(stmt, ":")
	if colon <= 0 {
		return styleDecl{}, false
	}
	prop := strings.TrimSpace(stmt[:colon])
	value := strings.TrimSpace(stmt[colon+1:])
	if prop == "" || value == "" || strings.ContainsAny(prop, " {}") {
		return styleDecl{}, false
	}
	return styleDecl{
		Property:  prop,
		Value:     value,
		Line:      line,
		Important: strings.Contains(strings.ToLower(value), "!important"),
	}, true
}
