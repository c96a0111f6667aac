package sink

import (
	"fmt"
	"strings"
)

// wavePath returns an SVG path that oscillates around y between x0 and x1
// with the given amplitude and wavelength, as a chain of quadratic curves.
func wavePath(x0, x1, y, amplitude, wavelength float64) string {
	if wavelength <= 0 {
		return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f", x0, y, x1, y)
	}
	half := wavelength / 2

	var b strings.Builder
	fmt.Fprintf(&b, "M%.2f,%.2f", x0, y)
	up := true
	for x := x0; x < x1; x += half {
		end := min(x+half, x1)
		peak := y - amplitude
		if !up {
			peak = y + amplitude
		}
		fmt.Fprintf(&b, " Q%.2f,%.2f %.2f,%.2f", (x+end)/2, peak, end, y)
		up = !up
	}
	return b.String()
}
