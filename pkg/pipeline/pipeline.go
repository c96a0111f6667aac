// Package pipeline runs the load → layout → render chain shared by the CLI
// and the HTTP API.
//
// # Stages
//
//  1. Load: read a column file (JSON or YAML) into layers
//  2. Layout: compute a [layout.Model] for the layers and options
//  3. Render: encode the model as SVG, PNG, PDF or JSON
//
// Layouts and artifacts are cached by content: the layout key hashes the
// layers, the layout options and the reference table; the artifact key
// hashes the model and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, chrono.NewMapper(chrono.Default()), logger)
//	res, err := runner.ExecuteFile(ctx, "well-7.json", pipeline.Options{
//	    Mode:    layout.ModeChronology,
//	    Formats: []string{"svg", "json"},
//	})
//	svg := res.Artifacts["svg"]
//
// [layout.Model]: github.com/vijaymanbajracharya/stratcol/pkg/layout#Model
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vijaymanbajracharya/stratcol/pkg/cache"
	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/config"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	stratio "github.com/vijaymanbajracharya/stratcol/pkg/io"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// DefaultHeight is the available drawing height when none is given.
const DefaultHeight = 800.0

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options configures one pipeline run. It is the request body of the
// layout endpoint, so zero values mean "default" where that is ambiguous.
type Options struct {
	// Layout options
	Mode          layout.Mode      `json:"mode"`
	Height        float64          `json:"height,omitempty"`
	HideGaps      bool             `json:"hide_gaps,omitempty"`
	Levels        []chrono.Level   `json:"levels,omitempty"`
	NoBands       bool             `json:"no_bands,omitempty"`
	NoEnvironment bool             `json:"no_environment,omitempty"`
	Window        *strat.AgeWindow `json:"window,omitempty"`
	MarkerSpacing *float64         `json:"marker_spacing,omitempty"`
	MinHeight     *float64         `json:"min_height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// FromConfig returns options seeded from the layout and render sections.
func FromConfig(cfg *config.Config) Options {
	l := cfg.Layout
	spacing, floor := l.MarkerSpacing, l.MinHeight
	opts := Options{
		Mode:          l.Mode,
		Height:        l.Height,
		HideGaps:      !l.ShowGaps,
		Levels:        append([]chrono.Level(nil), l.Levels...),
		NoBands:       len(l.Levels) == 0,
		NoEnvironment: !l.Environment,
		MarkerSpacing: &spacing,
		MinHeight:     &floor,
		Formats:       append([]string(nil), cfg.Render.Formats...),
		Scale:         cfg.Render.Scale,
	}
	if l.Window != nil {
		w := *l.Window
		opts.Window = &w
	}
	return opts
}

// Result is the output of a pipeline run.
type Result struct {
	Layers     []strat.Layer
	Metadata   stratio.Metadata
	ColumnHash string
	Model      layout.Model
	Artifacts  map[string][]byte
	Stats      Stats
	CacheInfo  CacheInfo
}

// Stats holds sizes and stage timings.
type Stats struct {
	Layers         int
	Blocks         int
	Unconformities int
	LoadTime       time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo records which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all requested artifacts came from cache
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetLayoutDefaults fills unset layout values.
func (o *Options) SetLayoutDefaults() {
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout applies defaults and checks the layout values.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "height must be positive, got %g", o.Height)
	}
	if _, ok := layoutModeNames[o.Mode]; !ok {
		return errors.New(errors.ErrCodeInvalidMode, "unknown layout mode %d", int(o.Mode))
	}
	if o.Window != nil {
		if err := o.Window.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults fills unset render values.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies defaults and checks the render values.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// Validate applies all defaults and checks every value.
func (o *Options) Validate() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

var layoutModeNames = func() map[layout.Mode]bool {
	m := make(map[layout.Mode]bool, len(layout.Modes))
	for _, mode := range layout.Modes {
		m[mode] = true
	}
	return m
}()

// LayoutOptions converts to engine options.
func (o *Options) LayoutOptions() []layout.Option {
	opts := []layout.Option{
		layout.WithMode(o.Mode),
		layout.WithGaps(!o.HideGaps),
		layout.WithEnvironment(!o.NoEnvironment),
	}
	switch {
	case o.NoBands:
		opts = append(opts, layout.WithLevels())
	case len(o.Levels) > 0:
		opts = append(opts, layout.WithLevels(o.Levels...))
	}
	if o.Window != nil {
		opts = append(opts, layout.WithWindow(*o.Window))
	}
	if o.MarkerSpacing != nil {
		opts = append(opts, layout.WithMarkerSpacing(*o.MarkerSpacing))
	}
	if o.MinHeight != nil {
		opts = append(opts, layout.WithMinHeight(*o.MinHeight))
	}
	return opts
}

// LayoutKeyOpts returns the cache key options for the layout stage.
func (o *Options) LayoutKeyOpts(referenceHash string) cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Mode:          o.Mode.String(),
		Height:        o.Height,
		ShowGaps:      !o.HideGaps,
		Environment:   !o.NoEnvironment,
		MarkerSpacing: layout.DefaultMarkerSpacing,
		MinHeight:     layout.MinBlockHeight,
		ReferenceHash: referenceHash,
		WindowFrom:    strat.AllTime().From,
		WindowTo:      strat.AllTime().To,
	}
	switch {
	case o.NoBands:
		k.Levels = []string{}
	case len(o.Levels) > 0:
		for _, l := range chrono.Levels {
			for _, want := range o.Levels {
				if l == want {
					k.Levels = append(k.Levels, l.String())
					break
				}
			}
		}
	default:
		for _, l := range chrono.Levels {
			k.Levels = append(k.Levels, l.String())
		}
	}
	if o.Window != nil {
		k.WindowFrom, k.WindowTo = o.Window.From, o.Window.To
	}
	if o.MarkerSpacing != nil && *o.MarkerSpacing >= 0 {
		k.MarkerSpacing = *o.MarkerSpacing
	}
	if o.MinHeight != nil && *o.MinHeight >= 0 {
		k.MinHeight = *o.MinHeight
	}
	return k
}

// ArtifactKeyOpts returns the cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Title: o.Title}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
