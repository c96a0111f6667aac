package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vijaymanbajracharya/stratcol/pkg/cache"
	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/config"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	stratio "github.com/vijaymanbajracharya/stratcol/pkg/io"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/observability"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

func testLayers() []strat.Layer {
	a := strat.NewLayer("Mancos", 30, strat.ShaleMudstone, 80, 95)
	b := strat.NewLayer("Dakota", 10, strat.Sandstone, 96, 100)
	c := strat.NewLayer("Morrison", 60, strat.Siltstone, 145, 155)
	return []strat.Layer{a, b, c}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
	if err := ValidateFormats([]string{"svg", "gif"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats() = %v, want INVALID_FORMAT", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height = %g, want %g", opts.Height, DefaultHeight)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative height", Options{Height: -1}, errors.ErrCodeInvalidInput},
		{"unknown mode", Options{Mode: layout.Mode(9)}, errors.ErrCodeInvalidMode},
		{"inverted window", Options{Window: &strat.AgeWindow{From: 10, To: 1}}, errors.ErrCodeInvalidRange},
		{"bad format", Options{Formats: []string{"bmp"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	k := cache.NewDefaultKeyer()
	key := func(o Options) string {
		o.SetLayoutDefaults()
		return k.LayoutKey("col", o.LayoutKeyOpts("ref"))
	}
	base := key(Options{})

	spacing := 20.0
	distinct := []Options{
		{Mode: layout.ModeChronology},
		{Height: 500},
		{HideGaps: true},
		{NoBands: true},
		{Levels: []chrono.Level{chrono.LevelEra}},
		{NoEnvironment: true},
		{Window: &strat.AgeWindow{From: 0, To: 100}},
		{MarkerSpacing: &spacing},
	}
	for i, o := range distinct {
		if key(o) == base {
			t.Errorf("option set %d should change the layout key", i)
		}
	}

	// Explicit defaults and level order do not change the key.
	all := Options{Levels: []chrono.Level{chrono.LevelAge, chrono.LevelEra, chrono.LevelPeriod, chrono.LevelEpoch}}
	if key(all) != base {
		t.Error("listing every level should equal the default")
	}
	def := layout.DefaultMarkerSpacing
	if key(Options{MarkerSpacing: &def}) != base {
		t.Error("explicit default spacing should equal the default")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.Mode = layout.ModeChronology
	cfg.Layout.Levels = nil
	cfg.Render.Formats = []string{"json"}

	opts := FromConfig(cfg)
	if opts.Mode != layout.ModeChronology || !opts.NoBands || opts.HideGaps {
		t.Errorf("FromConfig() = %+v", opts)
	}
	if opts.Formats[0] != "json" {
		t.Errorf("Formats = %v", opts.Formats)
	}
}

func TestRunnerCachesLayoutAndArtifacts(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil, nil)
	opts := Options{Mode: layout.ModeChronology, Formats: []string{"svg", "json"}, Title: "Mesa"}

	first, err := r.Execute(ctx, testLayers(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.Blocks != 3 || first.Stats.Unconformities != 1 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if !strings.Contains(string(first.Artifacts["svg"]), "Mesa") {
		t.Error("svg artifact missing title")
	}

	second, err := r.Execute(ctx, testLayers(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	if diff := cmp.Diff(first.Model, second.Model, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("cached model differs (-computed +cached):\n%s", diff)
	}
	if string(first.Artifacts["json"]) != string(second.Artifacts["json"]) {
		t.Error("cached json artifact differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, testLayers(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh should bypass cache reads")
	}
}

func TestRunnerCacheKeyTracksInput(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil, nil)

	if _, err := r.Execute(ctx, testLayers(), Options{}); err != nil {
		t.Fatal(err)
	}
	changed := testLayers()
	changed[0].Thickness = 31
	res, err := r.Execute(ctx, changed, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("edited layers must not hit the old layout")
	}

	res, err = r.Execute(ctx, testLayers(), Options{Mode: layout.ModeChronology})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("a different mode must not hit the old layout")
	}
}

func TestRunnerPropagatesLayoutErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	_, err := r.Execute(context.Background(), testLayers(), Options{Mode: layout.ModeFormationTop})
	if !errors.Is(err, errors.ErrCodeMissingFormationTop) {
		t.Errorf("Execute() = %v, want MISSING_FORMATION_TOP", err)
	}
}

func TestExecuteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesa.yaml")
	if err := stratio.Export(path, testLayers(), "test"); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, chrono.NewMapper(chrono.Default()), nil)
	res, err := r.ExecuteFile(context.Background(), path, Options{Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("ExecuteFile() error: %v", err)
	}
	if res.Metadata.CreatedWith != "test" {
		t.Errorf("metadata = %+v", res.Metadata)
	}
	if len(res.Layers) != 3 || res.ColumnHash != ColumnHash(testLayers()) {
		t.Error("loaded layers differ from the exported ones")
	}

	_, err = r.ExecuteFile(context.Background(), filepath.Join(t.TempDir(), "none.json"), Options{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ExecuteFile(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses map[string]int
}

func (h *countingCacheHooks) OnCacheHit(_ context.Context, k string)  { h.hits[k]++ }
func (h *countingCacheHooks) OnCacheMiss(_ context.Context, k string) { h.misses[k]++ }

func TestRunnerEmitsCacheHooks(t *testing.T) {
	defer observability.Reset()
	h := &countingCacheHooks{hits: map[string]int{}, misses: map[string]int{}}
	observability.SetCacheHooks(h)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil, nil)
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), testLayers(), Options{}); err != nil {
			t.Fatal(err)
		}
	}
	if h.misses["layout"] != 1 || h.hits["layout"] != 1 {
		t.Errorf("layout hits/misses = %d/%d, want 1/1", h.hits["layout"], h.misses["layout"])
	}
	if h.misses["artifact"] != 1 || h.hits["artifact"] != 1 {
		t.Errorf("artifact hits/misses = %d/%d, want 1/1", h.hits["artifact"], h.misses["artifact"])
	}
}
