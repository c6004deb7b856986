package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/styleguard/styleguard/pkg/console"
	"github.com/styleguard/styleguard/pkg/constants"
	"github.com/styleguard/styleguard/pkg/rules"
)

// InitConfig writes a commented default configuration file into dir
func InitConfig(dir string, force bool) error {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, constants.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	content, err := defaultConfigContent()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("Created %s", path)))
	return nil
}

// defaultConfigContent renders the default config as commented YAML: every
// rule enabled, no excludes, default nesting limit.
func defaultConfigContent() ([]byte, error) {
	ids := make([]string, 0, len(rules.Builtin()))
	for _, r := range rules.Builtin() {
		ids = append(ids, r.ID)
	}

	body, err := yamlv3.Marshal(map[string]any{
		"rules":       ids,
		"exclude":     []string{},
		"max_nesting": 3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config: %w", err)
	}

	header := strings.Join([]string{
		"# " + constants.CLIName + " configuration",
		"# rules: rule identifiers to enable (omit the key to enable all)",
		"# exclude: glob patterns of Markdown files to skip",
		"# max_nesting: selector nesting depth allowed by max-nesting-depth",
		"",
	}, "\n")

	return append([]byte(header), body...), nil
}
