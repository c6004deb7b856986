package cli

import (
	"fmt"
	"strings"

	"github.com/styleguard/styleguard/pkg/console"
	"github.com/styleguard/styleguard/pkg/rules"
)

// ListRules renders the built-in rule table
func ListRules(verbose bool) error {
	all := rules.Builtin()

	rows := make([][]string, 0, len(all))
	for _, r := range all {
		rows = append(rows, []string{r.ID, strings.Join(r.Languages, ", "), r.Description})
	}

	fmt.Print(console.RenderTable(console.TableConfig{
		Title:   "Built-in rules",
		Headers: []string{"ID", "Languages", "Description"},
		Rows:    rows,
	}))

	if verbose {
		fmt.Println()
		for _, r := range all {
			if r.Hint != "" {
				fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("%s: %s", r.ID, r.Hint)))
			}
		}
	}

	return nil
}
