package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Document is one Markdown source file, split into lines once at load time.
// Documents are immutable after loading; extraction always walks the stored
// lines, so re-running a check re-reads nothing.
type Document struct {
	Path  string
	Lines []string

	// Meta holds the parsed YAML frontmatter, empty when the file has none.
	Meta map[string]any
}

// ParseError records a malformed construct in one file. It is scoped to
// that file: other documents in the run are unaffected.
type ParseError struct {
	File    string
	Line    int // 1-based line of the offending construct
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// New builds a Document from raw content, parsing YAML frontmatter when the
// file opens with a --- delimiter. An unclosed frontmatter block is a
// ParseError for the file.
func New(path, content string) (*Document, error) {
	lines := strings.Split(content, "\n")

	doc := &Document{
		Path:  path,
		Lines: lines,
		Meta:  map[string]any{},
	}

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return doc, nil
	}

	endIndex := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			endIndex = i
			break
		}
	}
	if endIndex == -1 {
		return nil, &ParseError{File: path, Line: 1, Message: "frontmatter not properly closed"}
	}

	frontmatterYAML := strings.Join(lines[1:endIndex], "\n")
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(frontmatterYAML), &meta); err != nil {
		return nil, &ParseError{File: path, Line: 2, Message: fmt.Sprintf("failed to parse frontmatter: %v", err)}
	}
	if meta != nil {
		doc.Meta = meta
	}

	return doc, nil
}

// Load reads one Markdown file from disk
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return New(path, string(content))
}

// LintDisabled reports whether the document opts out of linting via a
// `lint: false` frontmatter key.
func (d *Document) LintDisabled() bool {
	v, ok := d.Meta["lint"]
	if !ok {
		return false
	}
	enabled, ok := v.(bool)
	return ok && !enabled
}

// Title returns the frontmatter title, or the first H1 header text, or ""
func (d *Document) Title() string {
	if t, ok := d.Meta["title"].(string); ok && t != "" {
		return t
	}
	for _, line := range d.Lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// LoadTree walks root collecting Markdown files in lexical path order.
// Files matching an exclude glob (slash-separated, relative to root) are
// skipped. Unreadable or malformed files become ParseErrors; the remaining
// documents still load.
func LoadTree(root string, excludes []string) ([]*Document, []*ParseError, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}

	var paths []string
	if !info.IsDir() {
		paths = []string{root}
	} else {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Skip hidden directories like .git
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".md" && ext != ".markdown" {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if matchesAny(filepath.ToSlash(rel), excludes) {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	// Lexical order keeps report ordering independent of walk order
	sort.Strings(paths)

	var docs []*Document
	var parseErrs []*ParseError
	for _, path := range paths {
		doc, err := Load(path)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				parseErrs = append(parseErrs, perr)
			} else {
				parseErrs = append(parseErrs, &ParseError{File: path, Line: 0, Message: err.Error()})
			}
			continue
		}
		docs = append(docs, doc)
	}

	return docs, parseErrs, nil
}

// matchesAny reports whether rel matches one of the glob patterns. Patterns
// are matched against the full relative path and against the base name, so
// "drafts/*" and "*.draft.md" both behave as expected.
func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
