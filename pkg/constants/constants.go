package constants

// CLIName is the name used in user-facing output to refer to the CLI
const CLIName = "styleguard"

// ConfigFileName is the default configuration file looked up in the lint root
const ConfigFileName = ".styleguard.yml"

// Process exit codes. Violations alone exit with ExitViolations; any parse,
// rule, or configuration error escalates to ExitErrors.
const (
	ExitClean      = 0
	ExitViolations = 1
	ExitErrors     = 2
)

// SnippetLanguages lists the fence languages the built-in rules understand.
// Fences with any other tag (or no tag) are extracted but never linted.
var SnippetLanguages = []string{
	"css",
	"scss",
	"html",
	"js",
}
