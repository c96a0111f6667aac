package strat

import (
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

// Placement selects how Add and Edit check a layer against the column.
type Placement int

const (
	// PlaceByAge skips the depth overlap check.
	PlaceByAge Placement = iota
	// PlaceByDepth rejects layers whose [top, top+thickness) interval
	// intersects another layer's.
	PlaceByDepth
)

// String returns "age" or "depth".
func (p Placement) String() string {
	if p == PlaceByDepth {
		return "depth"
	}
	return "age"
}

// Column is an ordered collection of layers. Insertion order carries no
// meaning for layout. A Column is not safe for concurrent use.
type Column struct {
	layers   []Layer
	maxDepth float64
	hasDepth bool
}

// NewColumn returns a column holding copies of layers. Layers are not
// validated; use Replace for checked bulk loads.
func NewColumn(layers ...Layer) *Column {
	c := &Column{}
	for _, l := range layers {
		c.layers = append(c.layers, l.Clone())
	}
	c.recompute()
	return c
}

// Len returns the number of layers.
func (c *Column) Len() int { return len(c.layers) }

// Layer returns a copy of layer i.
func (c *Column) Layer(i int) (Layer, bool) {
	if i < 0 || i >= len(c.layers) {
		return Layer{}, false
	}
	return c.layers[i].Clone(), true
}

// Layers returns a copy of every layer in insertion order.
func (c *Column) Layers() []Layer {
	out := make([]Layer, len(c.layers))
	for i, l := range c.layers {
		out[i] = l.Clone()
	}
	return out
}

// MaxDepth returns the deepest bottom over layers with a formation top.
func (c *Column) MaxDepth() (float64, bool) { return c.maxDepth, c.hasDepth }

// Add validates l and appends it. With PlaceByDepth a layer that has a
// formation top is rejected with *errors.OverlapError when it intersects an
// existing layer; the column is left unchanged on any error.
func (c *Column) Add(l Layer, p Placement) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if p == PlaceByDepth {
		if err := c.checkOverlap(l, -1); err != nil {
			return err
		}
	}
	c.layers = append(c.layers, l.Clone())
	c.recompute()
	return nil
}

// Edit replaces layer i with l under the same checks as Add, ignoring the
// layer being replaced. It returns false when i is out of range.
func (c *Column) Edit(i int, l Layer, p Placement) (bool, error) {
	if i < 0 || i >= len(c.layers) {
		return false, nil
	}
	if err := l.Validate(); err != nil {
		return true, err
	}
	if p == PlaceByDepth {
		if err := c.checkOverlap(l, i); err != nil {
			return true, err
		}
	}
	c.layers[i] = l.Clone()
	c.recompute()
	return true, nil
}

// Remove deletes layer i. It returns false when i is out of range.
func (c *Column) Remove(i int) bool {
	if i < 0 || i >= len(c.layers) {
		return false
	}
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	c.recompute()
	return true
}

// ToggleVisibility flips the Visible flag of layer i. It returns false when
// i is out of range.
func (c *Column) ToggleVisibility(i int) bool {
	if i < 0 || i >= len(c.layers) {
		return false
	}
	c.layers[i].Visible = !c.layers[i].Visible
	return true
}

// Replace swaps the whole content of the column. Every layer is validated
// first; on error the column keeps its previous layers.
func (c *Column) Replace(layers []Layer) error {
	next := make([]Layer, 0, len(layers))
	for _, l := range layers {
		if err := l.Validate(); err != nil {
			return err
		}
		next = append(next, l.Clone())
	}
	c.layers = next
	c.recompute()
	return nil
}

// Clear removes every layer.
func (c *Column) Clear() {
	c.layers = nil
	c.recompute()
}

func (c *Column) checkOverlap(l Layer, skip int) error {
	if l.FormationTop == nil {
		return nil
	}
	newTop := *l.FormationTop
	newBottom := newTop + l.Thickness
	for i, existing := range c.layers {
		if i == skip || existing.FormationTop == nil {
			continue
		}
		top := *existing.FormationTop
		bottom := top + existing.Thickness
		if newTop < bottom && newBottom > top {
			return &errors.OverlapError{Index: i, Name: existing.Name, Top: top, Base: bottom}
		}
	}
	return nil
}

func (c *Column) recompute() {
	c.maxDepth, c.hasDepth = 0, false
	for _, l := range c.layers {
		if b, ok := l.Bottom(); ok && (!c.hasDepth || b > c.maxDepth) {
			c.maxDepth, c.hasDepth = b, true
		}
	}
}
