package layout

import (
	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

// Model is the complete geometry of one column. It is rebuilt on every
// [Compute] call and owned by the caller.
type Model struct {
	Mode     Mode    `json:"mode"`
	ShowGaps bool    `json:"show_gaps"`
	Height   float64 `json:"height"`
	// Scale converts the mode's measure (metres or Ma) into layout units.
	// In chronology mode it applies to blocks above the height floor and is
	// zero when every block sits at the floor. Zero for an empty model.
	Scale float64 `json:"scale"`

	Blocks         []Block        `json:"blocks"`
	Boundaries     []Boundary     `json:"boundaries"`
	Unconformities []Unconformity `json:"unconformities"`
	DepthMarkers   []DepthMarker  `json:"depth_markers"`
	Columns        []ColumnKind   `json:"columns"`
}

// Empty reports whether the model has no blocks.
func (m Model) Empty() bool { return len(m.Blocks) == 0 }

// TotalHeight returns the sum of block heights.
func (m Model) TotalHeight() float64 {
	var sum float64
	for _, b := range m.Blocks {
		sum += b.Height()
	}
	return sum
}

// Extent returns the y range covered from the first block's top to the last
// block's bottom.
func (m Model) Extent() (top, bottom float64) {
	if len(m.Blocks) == 0 {
		return 0, 0
	}
	top, bottom = m.Blocks[0].Top, m.Blocks[0].Bottom
	for _, b := range m.Blocks[1:] {
		top = min(top, b.Top)
		bottom = max(bottom, b.Bottom)
	}
	return top, bottom
}

// BoundaryKind classifies the edge between two consecutive blocks.
type BoundaryKind int

const (
	// BoundaryStraight is a normal shared border.
	BoundaryStraight BoundaryKind = iota
	// BoundaryUnconformity replaces the border with a wavy line.
	BoundaryUnconformity
	// BoundaryGap leaves empty space between the blocks.
	BoundaryGap
)

var boundaryNames = [...]string{"straight", "unconformity", "gap"}

// String returns the kind name.
func (k BoundaryKind) String() string {
	if k < 0 || int(k) >= len(boundaryNames) {
		return "unknown"
	}
	return boundaryNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k BoundaryKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BoundaryKind) UnmarshalText(b []byte) error {
	i, err := parseName(boundaryNames[:], "boundary kind", string(b))
	*k = BoundaryKind(i)
	return err
}

// Boundary sits between Blocks[Upper] and Blocks[Upper+1]. Y is the bottom
// of the upper block.
type Boundary struct {
	Upper int          `json:"upper"`
	Y     float64      `json:"y"`
	Kind  BoundaryKind `json:"kind"`
}

// Unconformity is the wavy marker drawn in place of a suppressed border.
// Span is the number of rendered columns the marker crosses.
type Unconformity struct {
	Boundary   int     `json:"boundary"`
	Y          float64 `json:"y"`
	Gap        float64 `json:"gap"`
	Span       int     `json:"span"`
	Amplitude  float64 `json:"amplitude"`
	Wavelength float64 `json:"wavelength"`
}

// DepthMarker is a tick on the depth scale. LabelY may sit below Y when the
// label was pushed down to avoid its predecessor.
type DepthMarker struct {
	Depth  float64 `json:"depth"`
	Y      float64 `json:"y"`
	LabelY float64 `json:"label_y"`
}

// ColumnKind identifies one rendered column of the figure.
type ColumnKind int

// Rendered columns, left to right.
const (
	ColumnEra ColumnKind = iota
	ColumnPeriod
	ColumnEpoch
	ColumnAge
	ColumnEnvironment
	ColumnLithology
)

var columnNames = [...]string{"era", "period", "epoch", "age", "environment", "lithology"}

// String returns the column name.
func (k ColumnKind) String() string {
	if k < 0 || int(k) >= len(columnNames) {
		return "unknown"
	}
	return columnNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k ColumnKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ColumnKind) UnmarshalText(b []byte) error {
	i, err := parseName(columnNames[:], "column", string(b))
	*k = ColumnKind(i)
	return err
}

// Level returns the hierarchy level of a time column.
func (k ColumnKind) Level() (chrono.Level, bool) {
	if k >= ColumnEra && k <= ColumnAge {
		return chrono.Level(k - ColumnEra), true
	}
	return 0, false
}

func levelColumn(l chrono.Level) ColumnKind { return ColumnEra + ColumnKind(l) }

func parseName(names []string, what, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat, "unknown %s %q", what, s)
}
