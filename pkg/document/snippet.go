package document

import (
	"strings"
)

// Snippet is one fenced code block extracted from a Document. StartLine is
// the 1-based line of the opening fence; Text is the block body without the
// fence lines. Snippets are values: rules never mutate them.
type Snippet struct {
	File      string
	StartLine int
	Lang      string // normalized language tag, "" when the fence has none
	Text      string
}

// Lines splits the snippet body. Kept as a method so rules that need line
// offsets do not re-implement the split.
func (s Snippet) Lines() []string {
	return strings.Split(s.Text, "\n")
}

// langAliases maps fence info strings to the canonical tags rules declare
var langAliases = map[string]string{
	"javascript": "js",
	"htm":        "html",
}

// normalizeLang canonicalizes the first word of a fence info string
func normalizeLang(info string) string {
	lang := strings.ToLower(strings.Fields(info)[0])
	if canonical, ok := langAliases[lang]; ok {
		return canonical
	}
	return lang
}

// fenceDelimiter parses a fence line, returning the fence rune sequence and
// the trailing info string. Markdown allows up to three leading spaces and
// either backtick or tilde runs of length three or more.
func fenceDelimiter(line string) (marker string, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return "", "", false
	}
	for _, ch := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == ch {
			n++
		}
		if n >= 3 {
			return trimmed[:n], strings.TrimSpace(trimmed[n:]), true
		}
	}
	return "", "", false
}

// closesFence reports whether line terminates a fence opened with marker.
// A closing fence uses the same character, is at least as long, and carries
// no info string.
func closesFence(line, marker string) bool {
	closeMarker, info, ok := fenceDelimiter(line)
	if !ok || info != "" {
		return false
	}
	return closeMarker[0] == marker[0] && len(closeMarker) >= len(marker)
}

// ExtractSnippets walks the document and returns its fenced code blocks in
// line order. A fence opened but never closed is a ParseError for this
// document; a file with an unterminated fence contributes no snippets at
// all, so the partial result is discarded by the caller.
func ExtractSnippets(doc *Document) ([]Snippet, *ParseError) {
	var snippets []Snippet

	var (
		inFence   bool
		marker    string
		lang      string
		openLine  int
		bodyLines []string
	)

	for i, line := range doc.Lines {
		if !inFence {
			m, info, ok := fenceDelimiter(line)
			if !ok {
				continue
			}
			inFence = true
			marker = m
			openLine = i + 1
			bodyLines = bodyLines[:0]
			if info == "" {
				lang = ""
			} else {
				lang = normalizeLang(info)
			}
			continue
		}

		if closesFence(line, marker) {
			snippets = append(snippets, Snippet{
				File:      doc.Path,
				StartLine: openLine,
				Lang:      lang,
				Text:      strings.Join(bodyLines, "\n"),
			})
			inFence = false
			continue
		}

		bodyLines = append(bodyLines, line)
	}

	if inFence {
		return nil, &ParseError{
			File:    doc.Path,
			Line:    openLine,
			Message: "unterminated code fence",
		}
	}

	return snippets, nil
}
