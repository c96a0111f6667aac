package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// rocksCommand lists the rock types and environments a column file may use.
func (c *CLI) rocksCommand() *cobra.Command {
	var envs bool

	cmd := &cobra.Command{
		Use:   "rocks",
		Short: "List rock types by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envs {
				printEnvironments()
				return nil
			}
			printRocks()
			return nil
		},
	}
	cmd.Flags().BoolVar(&envs, "environments", false, "list depositional environments instead")
	return cmd
}

func printRocks() {
	for _, cat := range strat.Categories {
		rocks := strat.RockTypesByCategory(cat)
		if len(rocks) == 0 {
			continue
		}
		fmt.Fprintln(out, StyleTitle.Render(strings.ToUpper(string(cat[:1]))+string(cat[1:])))
		for _, r := range rocks {
			pattern := r.Pattern()
			if pattern == "" {
				pattern = "-"
			}
			fmt.Fprintf(out, "  %-36s %s %s\n", string(r), StyleValue.Render(r.DisplayName()), StyleDim.Render("FGDC "+pattern))
		}
		printNewline()
	}
}

func printEnvironments() {
	fmt.Fprintln(out, StyleTitle.Render("Depositional environments"))
	for _, e := range strat.Environments {
		fmt.Fprintf(out, "  %s %-26s %s\n", swatch(e.Color()), string(e), StyleValue.Render(e.DisplayName()))
	}
}
