// Package strat models the layers of a stratigraphic column.
//
// A [Layer] carries thickness, an optional formation top depth, an age span,
// a [RockType] and an optional depositional [Environment]. Rock types and
// environments resolve through static lookup tables to FGDC pattern codes
// and display colours.
//
// [Column] owns an ordered set of layers and enforces placement rules: with
// [PlaceByDepth] a new layer may not intersect the depth interval of an
// existing one, and a rejected insert leaves the column untouched.
//
//	col := strat.NewColumn()
//	l := strat.NewLayer("Dakota", 30, strat.Sandstone, 95, 100)
//	l.FormationTop = strat.Float(120)
//	if err := col.Add(l, strat.PlaceByDepth); err != nil {
//	    // *errors.OverlapError names the conflicting layer
//	}
package strat
