package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
)

// chronoCommand creates the chrono command for time-scale queries.
func (c *CLI) chronoCommand() *cobra.Command {
	var (
		minAge, maxAge float64
		levels         string
	)

	cmd := &cobra.Command{
		Use:   "chrono",
		Short: "Show the geologic time scale, or the units overlapping an age span",
		Example: `  stratcol chrono --min 60 --max 70
  stratcol chrono --levels era,period`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lv, err := parseLevelList(levels)
			if err != nil {
				return err
			}
			if len(lv) == 0 {
				lv = chrono.Levels
			}

			mapper := c.newMapper()
			var res chrono.Result
			if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
				if res, err = mapper.Map(minAge, maxAge); err != nil {
					return err
				}
				printInfo("Units overlapping %g–%g Ma", minAge, maxAge)
			} else {
				t := mapper.Table()
				res = chrono.Result{
					Eras:    t.Units(chrono.LevelEra),
					Periods: t.Units(chrono.LevelPeriod),
					Epochs:  t.Units(chrono.LevelEpoch),
					Ages:    t.Units(chrono.LevelAge),
				}
			}

			if res.Len() == 0 {
				printWarning("No units")
				return nil
			}
			fmt.Fprintln(out, chronoTable(res, lv))
			return nil
		},
	}

	cmd.Flags().Float64Var(&minAge, "min", 0, "youngest age of the span in Ma")
	cmd.Flags().Float64Var(&maxAge, "max", 0, "oldest age of the span in Ma")
	cmd.Flags().StringVar(&levels, "levels", "", "levels to list (default: all)")

	return cmd
}

// chronoTable renders the units of the selected levels, youngest first.
func chronoTable(res chrono.Result, levels []chrono.Level) string {
	var rows [][]string
	for _, l := range levels {
		for _, u := range res.Level(l) {
			rows = append(rows, []string{
				l.String(),
				u.Name,
				fmt.Sprintf("%.2f", u.StartAge),
				fmt.Sprintf("%.2f", u.EndAge),
				swatch(u.Color) + " " + strings.ToUpper(u.Color.Hex()),
			})
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Name", "Start (Ma)", "End (Ma)", "Colour").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return styleHeader
			case col == 0:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
