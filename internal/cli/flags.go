package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// layoutFlags holds the layout flags shared by layout, render and edit.
// Flags left unset keep the configured defaults.
type layoutFlags struct {
	mode     string
	height   float64
	noGaps   bool
	levels   string
	noEnv    bool
	from, to float64
	noCache  bool
	refresh  bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.mode, "mode", "m", "", "layout mode: thickness, formation-top, chronology (default from config)")
	fs.Float64Var(&f.height, "height", 0, "available drawing height")
	fs.BoolVar(&f.noGaps, "no-gaps", false, "close the space between non-adjacent layers")
	fs.StringVar(&f.levels, "levels", "", "time columns to draw: comma-separated era,period,epoch,age or none")
	fs.BoolVar(&f.noEnv, "no-env", false, "omit the depositional environment column")
	fs.Float64Var(&f.from, "from", 0, "youngest age of the window in Ma")
	fs.Float64Var(&f.to, "to", 0, "oldest age of the window in Ma")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
}

// options overlays the flags the user set on the configured defaults.
func (f *layoutFlags) options(cmd *cobra.Command, base pipeline.Options) (pipeline.Options, error) {
	opts := base
	fs := cmd.Flags()

	if fs.Changed("mode") {
		m, err := layout.ParseMode(f.mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("no-gaps") {
		opts.HideGaps = f.noGaps
	}
	if fs.Changed("levels") {
		levels, err := parseLevelList(f.levels)
		if err != nil {
			return opts, err
		}
		opts.Levels = levels
		opts.NoBands = len(levels) == 0
	}
	if fs.Changed("no-env") {
		opts.NoEnvironment = f.noEnv
	}
	if fs.Changed("from") || fs.Changed("to") {
		w := strat.AllTime()
		if fs.Changed("from") {
			w.From = f.from
		}
		if fs.Changed("to") {
			w.To = f.to
		}
		opts.Window = &w
	}
	opts.Refresh = f.refresh
	return opts, nil
}

func parseLevelList(s string) ([]chrono.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil, nil
	}
	var levels []chrono.Level
	for _, part := range strings.Split(s, ",") {
		l, err := chrono.ParseLevel(part)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "--levels")
		}
		levels = append(levels, l)
	}
	return levels, nil
}
