// Package palette provides the RGB colour type shared by the reference
// tables, the lithology lookups and the layout model.
//
// Colours travel through JSON, YAML, BSON and SVG as "#RRGGBB" strings.
// Parsing and perceptual helpers are delegated to go-colorful.
package palette

import (
	"encoding/json"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit-per-channel colour.
type RGB struct {
	R, G, B uint8
}

// Common colours.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Grey  = RGB{200, 200, 200}
)

// ParseHex parses "#RRGGBB" (or the short "#RGB" form).
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// MustHex is ParseHex for package-level tables; it panics on bad input.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the colour as an upper-case "#RRGGBB" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string { return c.Hex() }

// Lightness returns the CIE L*a*b* lightness in [0, 1].
func (c RGB) Lightness() float64 {
	l, _, _ := c.colorful().Lab()
	return l
}

// TextColor returns black or white, whichever reads better on c.
func (c RGB) TextColor() RGB {
	if c.Lightness() < 0.5 {
		return White
	}
	return Black
}

// Blend mixes c towards other by t in [0, 1] in Lab space.
func (c RGB) Blend(other RGB, t float64) RGB {
	r, g, b := c.colorful().BlendLab(other.colorful(), t).Clamped().RGB255()
	return RGB{r, g, b}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// MarshalText implements encoding.TextMarshaler so that JSON, YAML and map
// keys all use the hex form.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *RGB) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("colour must be a \"#RRGGBB\" string: %w", err)
	}
	return c.UnmarshalText([]byte(s))
}
