package sink

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 7.0
	fontSizeMax     = 14.0
)

// fontSizeFor picks the largest size that fits text of textLen characters
// into the box, clamped to [fontSizeMin, fontSizeMax].
func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// fits reports whether a label of the given size has room in a cell.
func fits(cellHeight, fontSize float64) bool { return cellHeight >= fontSize*1.2 }

func truncateLabel(label string, availWidth, fontSize float64) string {
	maxChars := max(3, int(availWidth*fontWidthRatio/(fontSize*fontCharWidth)+1e-9))
	r := []rune(label)
	if len(r) <= maxChars {
		return label
	}
	return string(r[:maxChars-2]) + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
