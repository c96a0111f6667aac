package pipeline

import (
	"context"
	"time"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/observability"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// ComputeLayout runs the layout engine without caching.
func ComputeLayout(ctx context.Context, layers []strat.Layer, m *chrono.Mapper, opts Options) (layout.Model, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Model{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Mode.String(), len(layers))
	start := time.Now()

	model, err := layout.Compute(layers, m, opts.Height, opts.LayoutOptions()...)
	hooks.OnLayoutComplete(ctx, opts.Mode.String(), len(model.Blocks), time.Since(start), err)
	return model, err
}
