package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/styleguard/styleguard/pkg/cli"
	"github.com/styleguard/styleguard/pkg/console"
	"github.com/styleguard/styleguard/pkg/constants"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var verbose bool

// validateFormat validates the format flag value
func validateFormat(format string) error {
	if format != "" && format != "text" && format != "json" {
		return fmt.Errorf("invalid format value '%s'. Must be 'text' or 'json'", format)
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Style-guide linter for front-end documentation",
	Long: ` = styleguard

Lints a directory tree of Markdown style-guide documents: fenced code blocks
tagged css, scss, html, or js are extracted and checked against the
conventions the guide itself prescribes, like BEM class naming and relative
length units.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Lint Markdown documentation under the given path",
	Long: `Lint a Markdown file or directory tree.

Examples:
  ` + constants.CLIName + ` check docs/
  ` + constants.CLIName + ` check docs/ --rules=bem-naming,no-fixed-pixel-length
  ` + constants.CLIName + ` check docs/ --format=json
  ` + constants.CLIName + ` check docs/ --watch

Exit codes: 0 when clean, 1 when violations were found, 2 when parse, rule,
or configuration errors occurred.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		ruleIDs, _ := cmd.Flags().GetString("rules")
		format, _ := cmd.Flags().GetString("format")
		configPath, _ := cmd.Flags().GetString("config")
		watch, _ := cmd.Flags().GetBool("watch")
		if err := validateFormat(format); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(constants.ExitErrors)
		}

		opts := cli.CheckOptions{
			Path:       path,
			Format:     format,
			ConfigPath: configPath,
			Verbose:    verbose,
		}
		if ruleIDs != "" {
			opts.RuleIDs = strings.Split(ruleIDs, ",")
		}

		if watch {
			if err := cli.WatchAndCheck(opts); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				os.Exit(constants.ExitErrors)
			}
			return
		}

		code, err := cli.RunCheck(opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(constants.ExitErrors)
		}
		os.Exit(code)
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ListRules(verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(constants.ExitErrors)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default " + constants.ConfigFileName + " into the given directory",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		forceFlag, _ := cmd.Flags().GetBool("force")
		if err := cli.InitConfig(dir, forceFlag); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(constants.ExitErrors)
		}
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the linter over stdio MCP",
	Long: `Serve the linter as an MCP server on standard input/output.

Exposes two tools:
  lint_path     lint a Markdown file or directory tree
  lint_snippet  lint one code snippet of a given language`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.RunMCPServer(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(constants.ExitErrors)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIName, version)))
	},
}

func init() {
	// Add global verbose flag to root command
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output showing detailed information")

	checkCmd.Flags().String("rules", "", "Comma-separated rule identifiers to run (default: all)")
	checkCmd.Flags().StringP("format", "f", "text", "Report format (text, json)")
	checkCmd.Flags().StringP("config", "c", "", "Path to config file (default: "+constants.ConfigFileName+" in the lint root)")
	checkCmd.Flags().BoolP("watch", "w", false, "Watch for changes to Markdown files and re-lint automatically")

	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	// Add all commands to root
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Set version information in the CLI package
	cli.SetVersionInfo(version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(console.FormatErrorMessage(err.Error()))
		os.Exit(constants.ExitErrors)
	}
}
