// Package layout computes the geometry of a stratigraphic column.
//
// # Overview
//
// [Compute] turns a slice of layers into a [Model]: one [Block] per visible
// layer with its vertical extent, the chronostratigraphic [Band]s that
// subdivide it, an optional environment band, the boundaries between
// consecutive blocks, unconformity markers and depth scale ticks. Nothing is
// painted here; renderers in [render/sink] or external UIs consume the model.
//
// Coordinates are in layout units with the origin at the top of the column
// and y growing downward. Consumers scale them to pixels.
//
// # Filtering
//
// Only layers with Visible set and fully contained in the age window
// ([WithWindow], default all time) are laid out. If none remain, Compute
// returns an empty model and no error.
//
// # Scaling Modes
//
//   - [ModeThickness] (default): sorted by young age, heights proportional
//     to thickness, cumulative depth markers.
//   - [ModeFormationTop]: sorted by formation top. Every laid-out layer needs
//     a top or Compute fails with MissingFormationTopError, and layers whose
//     depth intervals intersect fail with OverlapError. With gaps
//     ([WithGaps], default true) the depth axis is linear and empty depth
//     intervals become [BoundaryGap]; without gaps layers are packed and
//     marker labels are pushed apart by [WithMarkerSpacing].
//   - [ModeChronology]: sorted by young age, heights proportional to age span
//     with a floor ([WithMinHeight], default [MinBlockHeight]). An age gap
//     above [UnconformityThreshold] Ma between neighbours replaces the
//     straight border with an [Unconformity] spanning every rendered column.
//
// Block heights sum to the available height in every mode except
// formation-top with gaps, where the first top to the last bottom spans it.
//
// # Bands
//
// For each enabled level ([WithLevels], default all four) the layer's age
// span is intersected with the overlapping units returned by the mapper.
// Each intersection becomes a band whose fractions are relative to the block
// height, measured from the young edge:
//
//	bands, _ := layout.Decompose(layer, mapper, chrono.LevelPeriod)
//	top, bottom := block.BandSpan(bands[0])
//
// [render/sink]: github.com/vijaymanbajracharya/stratcol/pkg/render/sink
package layout
