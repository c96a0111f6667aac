package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

const eps = 1e-9

// Compute lays out the visible layers that fit entirely inside the age
// window into a column of the given height.
//
// The mapper supplies the chronostratigraphic bands; a nil mapper yields
// blocks without time bands. Layers are not modified. On error no model is
// returned: a typed error from pkg/errors names the offending input.
func Compute(layers []strat.Layer, m *chrono.Mapper, height float64, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if !(height > 0) || math.IsInf(height, 0) {
		return Model{}, errors.New(errors.ErrCodeInvalidInput, "available height must be positive (got %g)", height)
	}
	if err := cfg.window.Validate(); err != nil {
		return Model{}, err
	}

	model := Model{
		Mode:     cfg.mode,
		ShowGaps: cfg.showGaps,
		Height:   height,
		Columns:  cfg.columns(),
	}

	items, err := selectLayers(layers, cfg.window)
	if err != nil {
		return Model{}, err
	}
	if len(items) == 0 {
		return model, nil
	}

	var g geometry
	switch cfg.mode {
	case ModeFormationTop:
		g, err = layoutFormationTop(items, height, cfg)
	case ModeThickness:
		g, err = layoutThickness(items, height, cfg)
	case ModeChronology:
		g, err = layoutChronology(items, height, cfg)
	default:
		return Model{}, errors.New(errors.ErrCodeInvalidMode, "unsupported layout mode %d", int(cfg.mode))
	}
	if err != nil {
		return Model{}, err
	}

	model.Scale = g.scale
	model.Blocks = g.blocks
	model.Boundaries = g.boundaries
	model.DepthMarkers = g.markers
	for i, u := range g.unconformities {
		u.Span = len(model.Columns)
		g.unconformities[i] = u
	}
	model.Unconformities = g.unconformities

	if err := decorate(model.Blocks, m, cfg); err != nil {
		return Model{}, err
	}
	return model, nil
}

// item pairs a layer with its index in the caller's slice.
type item struct {
	index int
	layer strat.Layer
}

// geometry is what each mode produces; Compute assembles it into a Model.
type geometry struct {
	scale          float64
	blocks         []Block
	boundaries     []Boundary
	unconformities []Unconformity
	markers        []DepthMarker
}

func selectLayers(layers []strat.Layer, w strat.AgeWindow) ([]item, error) {
	var items []item
	for i, l := range layers {
		if !l.Visible || !w.Contains(l) {
			continue
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item{index: i, layer: l.Clone()})
	}
	return items, nil
}

func sortByYoungAge(items []item) {
	slices.SortStableFunc(items, func(a, b item) int {
		return cmp.Compare(a.layer.YoungAge, b.layer.YoungAge)
	})
}

// stack places blocks one after another from y=0 using the given heights.
func stack(items []item, heights []float64) []Block {
	blocks := make([]Block, len(items))
	y := 0.0
	for i, it := range items {
		blocks[i] = Block{Index: it.index, Layer: it.layer, Top: y, Bottom: y + heights[i]}
		y += heights[i]
	}
	return blocks
}

func straightBoundaries(blocks []Block) []Boundary {
	if len(blocks) < 2 {
		return nil
	}
	out := make([]Boundary, 0, len(blocks)-1)
	for i := 0; i < len(blocks)-1; i++ {
		out = append(out, Boundary{Upper: i, Y: blocks[i].Bottom, Kind: BoundaryStraight})
	}
	return out
}

// pushLabels keeps successive marker labels at least spacing apart.
func pushLabels(markers []DepthMarker, spacing float64) {
	for i := 1; i < len(markers); i++ {
		if floor := markers[i-1].LabelY + spacing; markers[i].LabelY < floor {
			markers[i].LabelY = floor
		}
	}
}
