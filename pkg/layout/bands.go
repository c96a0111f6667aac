package layout

import (
	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// decorate attaches time bands and environment bands to every block.
func decorate(blocks []Block, m *chrono.Mapper, cfg config) error {
	for i := range blocks {
		l := blocks[i].Layer
		if len(cfg.levels) > 0 && m != nil {
			bands, err := Decompose(l, m, cfg.levels...)
			if err != nil {
				return err
			}
			blocks[i].Bands = bands
		}
		if cfg.environment {
			blocks[i].Environment = environmentBand(l.Environment)
		}
	}
	return nil
}

// Decompose splits a layer's age span into fractional bands, one per unit
// of each requested level that the span overlaps. Fractions are measured
// from the young (top) edge: a unit covering the whole span yields 0..1.
// Layers with a non-positive span produce no bands.
func Decompose(l strat.Layer, m *chrono.Mapper, levels ...chrono.Level) ([]Band, error) {
	young, old := l.YoungAge, l.OldAge
	span := old - young
	if span <= 0 {
		return nil, nil
	}

	res, err := m.Map(young, old)
	if err != nil {
		return nil, err
	}

	var bands []Band
	for _, lvl := range levels {
		for _, u := range res.Level(lvl) {
			overlapYoung := max(young, u.StartAge)
			overlapOld := min(old, u.EndAge)
			if overlapOld <= overlapYoung {
				continue
			}
			bands = append(bands, Band{
				Level:          lvl,
				Name:           u.Name,
				Color:          u.Color,
				TopFraction:    (overlapYoung - young) / span,
				BottomFraction: (overlapOld - young) / span,
			})
		}
	}
	return bands, nil
}

func environmentBand(e strat.Environment) *EnvironmentBand {
	if e == strat.EnvNone || !e.Known() {
		return nil
	}
	return &EnvironmentBand{Environment: e, Name: e.DisplayName(), Color: e.Color()}
}
