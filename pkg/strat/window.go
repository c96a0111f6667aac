package strat

import (
	"math"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

// AgeWindow is an inclusive age interval in Ma used to restrict which layers
// are drawn.
type AgeWindow struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// AllTime returns a window that contains every layer.
func AllTime() AgeWindow { return AgeWindow{From: 0, To: math.MaxFloat64} }

// Validate rejects negative or inverted windows.
func (w AgeWindow) Validate() error {
	if w.From < 0 || w.To < 0 || w.From > w.To {
		return errors.New(errors.ErrCodeInvalidRange, "invalid age window [%g, %g]", w.From, w.To)
	}
	return nil
}

// Contains reports whether l lies entirely inside the window. This decides
// which layers appear in a rendered column.
func (w AgeWindow) Contains(l Layer) bool {
	return l.YoungAge >= w.From && l.OldAge <= w.To
}

// Overlaps reports whether l shares any time with the window.
func (w AgeWindow) Overlaps(l Layer) bool {
	return l.YoungAge < w.To && l.OldAge > w.From
}

// DepthRange returns the shallowest top and deepest bottom over layers with
// a formation top. Layers without a top are ignored; if none has one the
// result is an EMPTY_COLUMN error.
func DepthRange(layers []Layer) (minDepth, maxDepth float64, err error) {
	found := false
	for _, l := range layers {
		bottom, ok := l.Bottom()
		if !ok {
			continue
		}
		top := *l.FormationTop
		if !found {
			minDepth, maxDepth, found = top, bottom, true
			continue
		}
		minDepth = math.Min(minDepth, top)
		maxDepth = math.Max(maxDepth, bottom)
	}
	if !found {
		return 0, 0, errors.New(errors.ErrCodeEmptyColumn, "no layer has a formation top")
	}
	return minDepth, maxDepth, nil
}

// AgeRange returns the youngest and oldest age over layers.
func AgeRange(layers []Layer) (minAge, maxAge float64, err error) {
	if len(layers) == 0 {
		return 0, 0, errors.New(errors.ErrCodeEmptyColumn, "no layers")
	}
	minAge, maxAge = layers[0].YoungAge, layers[0].OldAge
	for _, l := range layers[1:] {
		minAge = math.Min(minAge, l.YoungAge)
		maxAge = math.Max(maxAge, l.OldAge)
	}
	return minAge, maxAge, nil
}
