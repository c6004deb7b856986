package rules

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"github.com/styleguard/styleguard/pkg/document"
)

func noInlineStyleRule() Rule {
	return Rule{
		ID:          "no-inline-style",
		Languages:   []string{"html"},
		Description: "Markup examples must not carry style attributes",
		Hint:        "move the declarations into a class in the stylesheet",
		Check:       checkNoInlineStyle,
	}
}

// checkNoInlineStyle flags style attributes on elements. Pixel lengths
// inside the attribute get an extra note so authors see both problems in
// one pass.
func checkNoInlineStyle(s document.Snippet) []Finding {
	var findings []Finding
	walkHTML(s, func(node *html.Node, line int) {
		for _, attr := range node.Attr {
			if attr.Key != "style" {
				continue
			}
			msg := fmt.Sprintf("<%s> uses an inline style attribute", node.Data)
			if decls, err := parser.ParseDeclarations(attr.Val); err == nil {
				for _, decl := range decls {
					if pxLiteral.MatchString(decl.Value) {
						msg += fmt.Sprintf("; '%s: %s' also hardcodes a pixel length", decl.Property, decl.Value)
						break
					}
				}
			}
			findings = append(findings, Finding{Line: line, Message: msg})
		}
	})
	return findings
}

// checkHTMLClasses applies the BEM grammar to class attributes; called by
// the bem-naming rule for html snippets.
func checkHTMLClasses(s document.Snippet) []Finding {
	var findings []Finding
	walkHTML(s, func(node *html.Node, line int) {
		for _, attr := range node.Attr {
			if attr.Key != "class" {
				continue
			}
			for _, class := range strings.Fields(attr.Val) {
				if !ValidBEMClass(class) {
					findings = append(findings, Finding{
						Line:    line,
						Message: fmt.Sprintf("class '%s' does not follow BEM naming", class),
					})
				}
			}
		}
	})
	return findings
}

// walkHTML parses the snippet as an HTML fragment and visits every element
// node. The parser has no position tracking, so the visitor receives a
// best-effort line located by searching the body for the opening tag.
func walkHTML(s document.Snippet, visit func(node *html.Node, line int)) {
	root, err := html.Parse(strings.NewReader(s.Text))
	if err != nil {
		return
	}
	lines := s.Lines()

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			visit(n, locateLine(lines, "<"+n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}
