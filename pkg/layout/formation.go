package layout

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// layoutFormationTop positions layers by depth. With gaps shown the depth
// axis is linear from the shallowest top to the deepest bottom; otherwise
// layers are packed in depth order.
func layoutFormationTop(items []item, height float64, cfg config) (geometry, error) {
	var missing []string
	for _, it := range items {
		if it.layer.FormationTop == nil {
			missing = append(missing, layerLabel(it))
		}
	}
	if len(missing) > 0 {
		return geometry{}, &errors.MissingFormationTopError{Layers: missing}
	}

	slices.SortStableFunc(items, func(a, b item) int {
		return cmp.Compare(*a.layer.FormationTop, *b.layer.FormationTop)
	})
	if err := checkDepthOverlap(items); err != nil {
		return geometry{}, err
	}

	if cfg.showGaps {
		return formationWithGaps(items, height)
	}
	return formationPacked(items, height, cfg.markerSpacing), nil
}

func formationWithGaps(items []item, height float64) (geometry, error) {
	layers := make([]strat.Layer, len(items))
	for i, it := range items {
		layers[i] = it.layer
	}
	minDepth, maxDepth, err := strat.DepthRange(layers)
	if err != nil {
		return geometry{}, err
	}
	scale := height / (maxDepth - minDepth)

	g := geometry{scale: scale, blocks: make([]Block, len(items))}
	for i, it := range items {
		top := (*it.layer.FormationTop - minDepth) * scale
		g.blocks[i] = Block{Index: it.index, Layer: it.layer, Top: top, Bottom: top + it.layer.Thickness*scale}
	}

	for i := 0; i < len(items)-1; i++ {
		kind := BoundaryStraight
		bottom, _ := items[i].layer.Bottom()
		if *items[i+1].layer.FormationTop > bottom+eps {
			kind = BoundaryGap
		}
		g.boundaries = append(g.boundaries, Boundary{Upper: i, Y: g.blocks[i].Bottom, Kind: kind})
	}

	g.markers = depthMarkers(items, g.blocks)
	return g, nil
}

func formationPacked(items []item, height, spacing float64) geometry {
	var total float64
	heights := make([]float64, len(items))
	for _, it := range items {
		total += it.layer.Thickness
	}
	scale := height / total
	for i, it := range items {
		heights[i] = it.layer.Thickness * scale
	}

	blocks := stack(items, heights)
	markers := depthMarkers(items, blocks)
	pushLabels(markers, spacing)
	return geometry{
		scale:      scale,
		blocks:     blocks,
		boundaries: straightBoundaries(blocks),
		markers:    markers,
	}
}

// checkDepthOverlap rejects items, sorted by top, whose depth intervals
// intersect. Columns built by age or loaded from a file skip the check done
// by strat.Column.Add.
func checkDepthOverlap(items []item) error {
	for i := 0; i < len(items)-1; i++ {
		upper := items[i].layer
		bottom, _ := upper.Bottom()
		if *items[i+1].layer.FormationTop < bottom-eps {
			return &errors.OverlapError{Index: items[i].index, Name: upper.Name, Top: *upper.FormationTop, Base: bottom}
		}
	}
	return nil
}

func sameDepth(a, b float64) bool { return math.Abs(a-b) <= eps }

// depthMarkers emits a marker at every top and bottom depth. A bottom that
// meets the next layer's top is emitted once, at that top.
func depthMarkers(items []item, blocks []Block) []DepthMarker {
	markers := make([]DepthMarker, 0, 2*len(items))
	for i, it := range items {
		top := *it.layer.FormationTop
		markers = append(markers, DepthMarker{Depth: top, Y: blocks[i].Top, LabelY: blocks[i].Top})
		bottom, _ := it.layer.Bottom()
		if i+1 < len(items) && sameDepth(*items[i+1].layer.FormationTop, bottom) {
			continue
		}
		markers = append(markers, DepthMarker{Depth: bottom, Y: blocks[i].Bottom, LabelY: blocks[i].Bottom})
	}
	return markers
}

func layerLabel(it item) string {
	if it.layer.Name != "" {
		return it.layer.Name
	}
	return fmt.Sprintf("#%d", it.index)
}
