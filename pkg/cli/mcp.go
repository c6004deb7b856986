package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/styleguard/styleguard/pkg/console"
	"github.com/styleguard/styleguard/pkg/constants"
	"github.com/styleguard/styleguard/pkg/document"
	"github.com/styleguard/styleguard/pkg/engine"
	"github.com/styleguard/styleguard/pkg/rules"
)

// lintPathArgs are the arguments of the lint_path tool
type lintPathArgs struct {
	Path  string   `json:"path"`
	Rules []string `json:"rules,omitempty"`
}

// lintSnippetArgs are the arguments of the lint_snippet tool
type lintSnippetArgs struct {
	Language string   `json:"language"`
	Source   string   `json:"source"`
	Rules    []string `json:"rules,omitempty"`
}

// lintOutput is the structured result both tools return
type lintOutput struct {
	Findings []jsonFinding `json:"findings"`
	ExitCode int           `json:"exit_code"`
}

// RunMCPServer serves the linter over stdio MCP so editor agents can lint
// documentation without shelling out to the CLI.
func RunMCPServer(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    constants.CLIName,
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lint_path",
		Description: "Lint the fenced code blocks of a Markdown file or directory tree against the style-guide rules",
	}, handleLintPath)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lint_snippet",
		Description: "Lint one code snippet (css, scss, html, or js) against the style-guide rules",
	}, handleLintSnippet)

	return server.Run(ctx, mcp.NewStdioTransport())
}

func handleLintPath(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[lintPathArgs]) (*mcp.CallToolResultFor[lintOutput], error) {
	args := params.Arguments
	if args.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	ruleSet, err := rules.Select(rules.Builtin(), args.Rules)
	if err != nil {
		return nil, err
	}

	docs, parseErrs, err := document.LoadTree(args.Path, nil)
	if err != nil {
		return nil, err
	}

	result := engine.Run(docs, ruleSet, parseErrs)
	return lintResult(result)
}

func handleLintSnippet(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[lintSnippetArgs]) (*mcp.CallToolResultFor[lintOutput], error) {
	args := params.Arguments
	if args.Source == "" {
		return nil, fmt.Errorf("source is required")
	}
	if !supportedLanguage(args.Language) {
		return nil, fmt.Errorf("unsupported language '%s': must be one of %s",
			args.Language, strings.Join(constants.SnippetLanguages, ", "))
	}

	ruleSet, err := rules.Select(rules.Builtin(), args.Rules)
	if err != nil {
		return nil, err
	}

	// Wrap the snippet in a synthetic one-fence document so the normal
	// pipeline applies.
	content := fmt.Sprintf("```%s\n%s\n```\n", args.Language, args.Source)
	doc, perr := document.New("snippet.md", content)
	if perr != nil {
		return nil, perr
	}

	result := engine.Run([]*document.Document{doc}, ruleSet, nil)
	return lintResult(result)
}

// supportedLanguage reports whether the built-in rules cover the given
// fence language
func supportedLanguage(lang string) bool {
	for _, l := range constants.SnippetLanguages {
		if lang == l {
			return true
		}
	}
	return false
}

// lintResult converts an engine result into the MCP tool response
func lintResult(result *engine.Result) (*mcp.CallToolResultFor[lintOutput], error) {
	out := lintOutput{
		Findings: []jsonFinding{},
		ExitCode: result.ExitCode(),
	}
	for _, d := range collectDiagnostics(result) {
		severity := "warning"
		if d.Severity == console.SeverityError {
			severity = "error"
		}
		out.Findings = append(out.Findings, jsonFinding{
			Rule:     d.Rule,
			File:     d.Position.File,
			Line:     d.Position.Line,
			Column:   d.Position.Column,
			Severity: severity,
			Message:  d.Message,
		})
	}

	text, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lint result: %w", err)
	}

	return &mcp.CallToolResultFor[lintOutput]{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: out,
	}, nil
}
