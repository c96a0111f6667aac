package layout

import (
	"slices"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

const (
	// MinBlockHeight is the default height floor of chronology-mode blocks.
	MinBlockHeight = 5.0
	// UnconformityThreshold is the age gap in Ma above which two adjacent
	// chronology-mode layers are separated by an unconformity.
	UnconformityThreshold = 1.0
	// WaveAmplitude and WaveLength shape the wavy unconformity boundary.
	WaveAmplitude = 3.0
	WaveLength    = 12.0
	// DefaultMarkerSpacing is the minimum vertical distance between depth
	// marker labels in packed layouts.
	DefaultMarkerSpacing = 12.0
)

// Option configures [Compute].
type Option func(*config)

type config struct {
	mode          Mode
	showGaps      bool
	window        strat.AgeWindow
	levels        []chrono.Level
	environment   bool
	markerSpacing float64
	minHeight     float64
}

func defaultConfig() config {
	return config{
		mode:          ModeThickness,
		showGaps:      true,
		window:        strat.AllTime(),
		levels:        slices.Clone(chrono.Levels),
		environment:   true,
		markerSpacing: DefaultMarkerSpacing,
		minHeight:     MinBlockHeight,
	}
}

// WithMode sets the scaling mode (default [ModeThickness]).
func WithMode(m Mode) Option { return func(c *config) { c.mode = m } }

// WithGaps controls whether formation-top layouts keep depth gaps between
// layers (default true). Ignored by the other modes.
func WithGaps(show bool) Option { return func(c *config) { c.showGaps = show } }

// WithWindow restricts the layout to layers fully inside w.
func WithWindow(w strat.AgeWindow) Option { return func(c *config) { c.window = w } }

// WithLevels selects the hierarchy levels decomposed into bands. Passing no
// levels disables time bands entirely.
func WithLevels(levels ...chrono.Level) Option {
	return func(c *config) {
		c.levels = nil
		for _, l := range chrono.Levels {
			if slices.Contains(levels, l) {
				c.levels = append(c.levels, l)
			}
		}
	}
}

// WithEnvironment toggles the depositional environment column.
func WithEnvironment(show bool) Option { return func(c *config) { c.environment = show } }

// WithMarkerSpacing sets the minimum label spacing of depth markers.
func WithMarkerSpacing(s float64) Option {
	return func(c *config) {
		if s >= 0 {
			c.markerSpacing = s
		}
	}
}

// WithMinHeight sets the chronology-mode height floor.
func WithMinHeight(h float64) Option {
	return func(c *config) {
		if h >= 0 {
			c.minHeight = h
		}
	}
}

func (c config) columns() []ColumnKind {
	cols := make([]ColumnKind, 0, len(c.levels)+2)
	for _, l := range c.levels {
		cols = append(cols, levelColumn(l))
	}
	if c.environment {
		cols = append(cols, ColumnEnvironment)
	}
	return append(cols, ColumnLithology)
}
