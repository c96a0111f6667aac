package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// validateCommand checks column files without rendering them.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [column.json...]",
		Short: "Check column files for malformed records and overlapping layers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := validateFile(cmd.Context(), path); err != nil {
					printError("%s: %s", path, errors.UserMessage(err))
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}

// validateFile loads path and rebuilds the column layer by layer with depth
// placement, so overlaps are reported the way an editor would report them.
func validateFile(ctx context.Context, path string) error {
	layers, _, err := pipeline.Load(ctx, path)
	if err != nil {
		return err
	}

	col := strat.NewColumn()
	withTop := 0
	for i, l := range layers {
		if err := col.Add(l, strat.PlaceByDepth); err != nil {
			var oe *errors.OverlapError
			if stderrors.As(err, &oe) {
				return errors.Wrap(errors.ErrCodeOverlap, err, "layer %d (%s) overlaps %s", i, l.Name, oe.Name)
			}
			return errors.Wrap(errors.ErrCodeInvalidLayer, err, "layer %d (%s)", i, l.Name)
		}
		if l.FormationTop != nil {
			withTop++
		}
	}

	printSuccess("%s", path)
	printDetail("%d layers", col.Len())
	if lo, hi, err := strat.AgeRange(layers); err == nil {
		printDetail("%g–%g Ma", lo, hi)
	}
	if depth, ok := col.MaxDepth(); ok {
		printDetail("%g m deep", depth)
	}
	if withTop > 0 && withTop < len(layers) {
		printWarning("%d of %d layers lack a formation top; formation-top mode will fail", len(layers)-withTop, len(layers))
	}
	return nil
}
