package chrono

import (
	"fmt"
	"strings"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/palette"
)

// Level identifies one rank of the geochronologic hierarchy.
type Level int

// Hierarchy levels, coarsest first.
const (
	LevelEra Level = iota
	LevelPeriod
	LevelEpoch
	LevelAge
)

// Levels lists every level in display order.
var Levels = []Level{LevelEra, LevelPeriod, LevelEpoch, LevelAge}

var levelNames = [...]string{"era", "period", "epoch", "age"}

// String returns the singular lower-case name ("era", "period", ...).
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// FileName returns the reference data file holding this level.
func (l Level) FileName() string { return l.String() + "s.json" }

// ParseLevel accepts singular or plural level names, case-insensitively.
func ParseLevel(s string) (Level, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown hierarchy level %q (want era, period, epoch or age)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Unit is a named interval of geological time. StartAge is the younger bound
// and EndAge the older bound, both in Ma.
type Unit struct {
	Name     string      `json:"name"`
	StartAge float64     `json:"start_age"`
	EndAge   float64     `json:"end_age"`
	Color    palette.RGB `json:"color"`
}

// Span returns the duration of the unit in Ma.
func (u Unit) Span() float64 { return u.EndAge - u.StartAge }

// Table holds the reference units of every level, each sorted by age.
// A Table must not be modified after it is handed to a Mapper.
type Table struct {
	levels [4][]Unit
}

// NewTable builds a table from per-level unit slices. Units are validated
// (StartAge < EndAge, non-negative ages) and must already be in ascending
// age order; the slices are copied.
func NewTable(eras, periods, epochs, ages []Unit) (*Table, error) {
	t := &Table{}
	for i, units := range [][]Unit{eras, periods, epochs, ages} {
		lvl := Level(i)
		if err := validateUnits(lvl, units); err != nil {
			return nil, err
		}
		t.levels[lvl] = append([]Unit(nil), units...)
	}
	return t, nil
}

// Empty returns a table with no units. Mapping against it always yields
// empty results.
func Empty() *Table { return &Table{} }

// Units returns the units of one level. The returned slice must not be
// modified.
func (t *Table) Units(l Level) []Unit {
	if t == nil || l < 0 || int(l) >= len(t.levels) {
		return nil
	}
	return t.levels[l]
}

// Len returns the total number of units across all levels.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, units := range t.levels {
		n += len(units)
	}
	return n
}

// IsEmpty reports whether the table holds no units at all.
func (t *Table) IsEmpty() bool { return t.Len() == 0 }

func validateUnits(lvl Level, units []Unit) error {
	for i, u := range units {
		if u.Name == "" {
			return errors.New(errors.ErrCodeInvalidReference, "%s %d: empty name", lvl, i)
		}
		if u.StartAge < 0 || u.StartAge >= u.EndAge {
			return errors.New(errors.ErrCodeInvalidReference, "%s %q: start age %g must be non-negative and below end age %g", lvl, u.Name, u.StartAge, u.EndAge)
		}
		if i > 0 && u.StartAge < units[i-1].StartAge {
			return errors.New(errors.ErrCodeInvalidReference, "%s %q: units are not in ascending age order", lvl, u.Name)
		}
	}
	return nil
}
