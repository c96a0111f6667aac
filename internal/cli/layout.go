package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
)

// layoutCommand creates the layout command for computing layout models.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [column.json]",
		Short: "Compute the layout model of a column file",
		Long: `Compute the layout model of a column file.

The layout command reads a column file (JSON or YAML) and writes the geometric
model (positioned blocks, time bands, boundaries, unconformities and depth
markers) as JSON, the same document 'render -f json' produces.

Results are cached, so repeated runs with the same column and options are
served without recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, pipeline.FromConfig(c.Config))
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the column, computes its layout and writes the model.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Mode))
	spinner.Start()
	res, err := runner.ExecuteFile(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, res.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats.Layers, res.Stats.Blocks, res.Stats.Unconformities, res.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)
	return nil
}
