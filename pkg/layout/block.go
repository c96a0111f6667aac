package layout

import (
	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/palette"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// Block is the rectangle of one layer. Top and Bottom are y offsets in
// layout units with the origin at the top of the column, so Top < Bottom.
type Block struct {
	Index       int              `json:"index"`
	Layer       strat.Layer      `json:"layer"`
	Top         float64          `json:"top"`
	Bottom      float64          `json:"bottom"`
	Bands       []Band           `json:"bands,omitempty"`
	Environment *EnvironmentBand `json:"environment,omitempty"`
}

// Height returns the vertical span of the block.
func (b Block) Height() float64 { return b.Bottom - b.Top }

// CenterY returns the vertical center of the block.
func (b Block) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// BandSpan converts a band's fractions into absolute y offsets.
func (b Block) BandSpan(band Band) (top, bottom float64) {
	h := b.Height()
	return b.Top + band.TopFraction*h, b.Top + band.BottomFraction*h
}

// LevelBands returns the bands of one hierarchy level in age order.
func (b Block) LevelBands(l chrono.Level) []Band {
	var out []Band
	for _, band := range b.Bands {
		if band.Level == l {
			out = append(out, band)
		}
	}
	return out
}

// Band is the part of a block that falls inside one chronostratigraphic
// unit, as fractions of the block height measured from its top (young) edge.
type Band struct {
	Level          chrono.Level `json:"level"`
	Name           string       `json:"name"`
	Color          palette.RGB  `json:"color"`
	TopFraction    float64      `json:"top_fraction"`
	BottomFraction float64      `json:"bottom_fraction"`
}

// EnvironmentBand is the full-height depositional environment cell of a
// block.
type EnvironmentBand struct {
	Environment strat.Environment `json:"environment"`
	Name        string            `json:"name"`
	Color       palette.RGB       `json:"color"`
}
