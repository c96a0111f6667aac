package layout

import (
	"strings"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

// Mode selects the vertical scaling policy of a layout.
type Mode int

const (
	// ModeThickness stacks layers by young age, heights proportional to
	// thickness.
	ModeThickness Mode = iota
	// ModeFormationTop positions layers by formation top depth.
	ModeFormationTop
	// ModeChronology stacks layers by young age, heights proportional to
	// age span, and marks unconformities.
	ModeChronology
)

// Modes lists every mode.
var Modes = []Mode{ModeThickness, ModeFormationTop, ModeChronology}

var modeNames = map[Mode]string{
	ModeThickness:    "thickness",
	ModeFormationTop: "formation-top",
	ModeChronology:   "chronology",
}

// String returns the mode name used in flags and config files.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode parses a mode name. Underscores are accepted in place of dashes.
func ParseMode(s string) (Mode, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidMode, "unknown layout mode %q (want thickness, formation-top or chronology)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
