package layout

// layoutThickness stacks layers youngest first with heights proportional to
// thickness. Age gaps are ignored. Depth markers show cumulative thickness
// from the top of the column.
func layoutThickness(items []item, height float64, cfg config) (geometry, error) {
	sortByYoungAge(items)

	var total float64
	for _, it := range items {
		total += it.layer.Thickness
	}
	scale := height / total

	heights := make([]float64, len(items))
	for i, it := range items {
		heights[i] = it.layer.Thickness * scale
	}
	blocks := stack(items, heights)

	markers := make([]DepthMarker, 0, len(items)+1)
	markers = append(markers, DepthMarker{})
	depth := 0.0
	for i, it := range items {
		depth += it.layer.Thickness
		markers = append(markers, DepthMarker{Depth: depth, Y: blocks[i].Bottom, LabelY: blocks[i].Bottom})
	}
	pushLabels(markers, cfg.markerSpacing)

	return geometry{
		scale:      scale,
		blocks:     blocks,
		boundaries: straightBoundaries(blocks),
		markers:    markers,
	}, nil
}
