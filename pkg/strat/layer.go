package strat

import (
	"math"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

// Layer is one rock unit of a column. Thickness and depths are in metres,
// ages in Ma.
type Layer struct {
	Name      string   `json:"name"`
	Thickness float64  `json:"thickness"`
	RockType  RockType `json:"rock_type"`

	// FormationTop is the depth of the layer's top surface, nil when the
	// layer is positioned by age only.
	FormationTop *float64 `json:"formation_top"`

	YoungAge float64 `json:"young_age"`
	OldAge   float64 `json:"old_age"`

	Environment Environment `json:"environment,omitempty"`
	Visible     bool        `json:"visible"`

	MinThickness *float64 `json:"min_thickness"`
	MaxThickness *float64 `json:"max_thickness"`
}

// NewLayer returns a visible layer without a formation top or environment.
func NewLayer(name string, thickness float64, rock RockType, youngAge, oldAge float64) Layer {
	return Layer{
		Name:      name,
		Thickness: thickness,
		RockType:  rock,
		YoungAge:  youngAge,
		OldAge:    oldAge,
		Visible:   true,
	}
}

// Float returns a pointer to v, for the optional fields of Layer.
func Float(v float64) *float64 { return &v }

// Validate checks the numeric invariants of the layer and that its rock
// type and environment are listed in the lookup tables.
func (l Layer) Validate() error {
	switch {
	case !l.RockType.Known():
		return errors.New(errors.ErrCodeInvalidLayer, "layer %q: unknown rock type %q", l.Name, l.RockType)
	case l.Environment != EnvNone && !l.Environment.Known():
		return errors.New(errors.ErrCodeInvalidLayer, "layer %q: unknown environment %q", l.Name, l.Environment)
	case !finite(l.Thickness) || l.Thickness <= 0:
		return errors.New(errors.ErrCodeInvalidLayer, "layer %q: thickness must be positive (got %g)", l.Name, l.Thickness)
	case !finite(l.YoungAge) || l.YoungAge < 0:
		return errors.New(errors.ErrCodeInvalidLayer, "layer %q: young age must be non-negative (got %g)", l.Name, l.YoungAge)
	case !finite(l.OldAge) || l.YoungAge >= l.OldAge:
		return errors.New(errors.ErrCodeInvalidLayer, "layer %q: young age %g must be below old age %g", l.Name, l.YoungAge, l.OldAge)
	case l.FormationTop != nil && !finite(*l.FormationTop):
		return errors.New(errors.ErrCodeInvalidLayer, "layer %q: formation top is not a number", l.Name)
	case l.MinThickness != nil && l.MaxThickness != nil && *l.MinThickness > *l.MaxThickness:
		return errors.New(errors.ErrCodeInvalidLayer, "layer %q: min thickness %g exceeds max thickness %g", l.Name, *l.MinThickness, *l.MaxThickness)
	}
	return nil
}

// Category returns the category of the layer's rock type.
func (l Layer) Category() Category { return l.RockType.Category() }

// Pattern returns the FGDC pattern code of the layer's rock type.
func (l Layer) Pattern() string { return l.RockType.Pattern() }

// Bottom returns FormationTop + Thickness, or false when the layer has no
// formation top.
func (l Layer) Bottom() (float64, bool) {
	if l.FormationTop == nil {
		return 0, false
	}
	return *l.FormationTop + l.Thickness, true
}

// AgeSpan returns OldAge - YoungAge.
func (l Layer) AgeSpan() float64 { return l.OldAge - l.YoungAge }

// Clone returns a copy that shares no pointers with l.
func (l Layer) Clone() Layer {
	l.FormationTop = clonePtr(l.FormationTop)
	l.MinThickness = clonePtr(l.MinThickness)
	l.MaxThickness = clonePtr(l.MaxThickness)
	return l
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
