package sink

import (
	"bytes"
	"fmt"

	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/palette"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

const fontFamily = `font-family="Helvetica, Arial, sans-serif"`

// categoryFill is the lithology cell colour per rock category. Pattern
// fills are left to the consumer via the data-pattern attribute.
var categoryFill = map[strat.Category]palette.RGB{
	strat.CategorySedimentary: palette.MustHex("#F5E6B8"),
	strat.CategoryIgneous:     palette.MustHex("#E8A0A0"),
	strat.CategoryMetamorphic: palette.MustHex("#B8C8E0"),
	strat.CategoryOther:       palette.Grey,
}

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	margin      float64
	timeWidth   float64
	envWidth    float64
	lithWidth   float64
	scaleWidth  float64
	depthLabels bool
}

// WithTitle draws a heading above the column.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithMargin sets the frame margin (default 40).
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithColumnWidths sets the widths of time, environment and lithology
// columns (defaults 70, 80, 220).
func WithColumnWidths(time, env, lith float64) SVGOption {
	return func(r *svgRenderer) { r.timeWidth, r.envWidth, r.lithWidth = time, env, lith }
}

// WithoutDepthScale hides the depth scale.
func WithoutDepthScale() SVGOption { return func(r *svgRenderer) { r.depthLabels = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		margin:      40,
		timeWidth:   70,
		envWidth:    80,
		lithWidth:   220,
		scaleWidth:  70,
		depthLabels: true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the model as a standalone SVG document: one rectangle per
// band, environment and lithology cell, straight borders, wavy unconformity
// lines and a depth scale. The model's y units map 1:1 to SVG units.
func RenderSVG(m layout.Model, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	top := r.margin
	if r.title != "" {
		top += 30
	}
	xs := r.columnOffsets(m.Columns)
	right := xs[len(xs)-1]
	width := right + r.margin
	if r.depthLabels && len(m.DepthMarkers) > 0 {
		width += r.scaleWidth
	}
	height := top + m.Height + r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="white"/>`+"\n", width, height)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" %s font-size="16" font-weight="bold">%s</text>`+"\n",
			r.margin, r.margin+10, fontFamily, escapeXML(r.title))
	}
	if m.Empty() {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" %s font-size="12">No layers</text>`+"\n", r.margin, top+20, fontFamily)
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	r.renderHeaders(&buf, m.Columns, xs, top)
	for _, b := range m.Blocks {
		r.renderBlock(&buf, m.Columns, xs, top, b)
	}
	r.renderBoundaries(&buf, m, xs, top)
	if r.depthLabels {
		r.renderDepthScale(&buf, m.DepthMarkers, right+10, top)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// columnOffsets returns the left edge of each column plus the right edge of
// the last one.
func (r svgRenderer) columnOffsets(cols []layout.ColumnKind) []float64 {
	xs := make([]float64, 0, len(cols)+1)
	x := r.margin
	for _, c := range cols {
		xs = append(xs, x)
		x += r.columnWidth(c)
	}
	return append(xs, x)
}

func (r svgRenderer) columnWidth(c layout.ColumnKind) float64 {
	switch c {
	case layout.ColumnLithology:
		return r.lithWidth
	case layout.ColumnEnvironment:
		return r.envWidth
	}
	return r.timeWidth
}

func (r svgRenderer) renderHeaders(buf *bytes.Buffer, cols []layout.ColumnKind, xs []float64, top float64) {
	for i, c := range cols {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" %s font-size="10" text-anchor="middle">%s</text>`+"\n",
			(xs[i]+xs[i+1])/2, top-6, fontFamily, escapeXML(c.String()))
	}
}

func (r svgRenderer) renderBlock(buf *bytes.Buffer, cols []layout.ColumnKind, xs []float64, top float64, b layout.Block) {
	fmt.Fprintf(buf, `  <g class="layer" id="layer-%d">`+"\n", b.Index)
	for i, c := range cols {
		x, w := xs[i], xs[i+1]-xs[i]
		switch c {
		case layout.ColumnLithology:
			fill := categoryFill[b.Layer.Category()]
			renderCell(buf, x, top+b.Top, w, b.Height(), fill,
				fmt.Sprintf(` data-pattern="%s"`, escapeXML(b.Layer.Pattern())),
				b.Layer.Name, fmt.Sprintf("%s, %gm", b.Layer.RockType.DisplayName(), b.Layer.Thickness))
		case layout.ColumnEnvironment:
			if b.Environment == nil {
				continue
			}
			renderCell(buf, x, top+b.Top, w, b.Height(), b.Environment.Color, "", b.Environment.Name, "")
		default:
			lvl, _ := c.Level()
			for _, band := range b.LevelBands(lvl) {
				y0, y1 := b.BandSpan(band)
				renderCell(buf, x, top+y0, w, y1-y0, band.Color, "", band.Name, "")
			}
		}
	}
	buf.WriteString("  </g>\n")
}

func renderCell(buf *bytes.Buffer, x, y, w, h float64, fill palette.RGB, attrs, label, sub string) {
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n",
		x, y, w, h, fill.Hex(), attrs)
	if label == "" {
		return
	}
	size := fontSizeFor(w-6, h, len(label))
	if !fits(h, size) {
		return
	}
	text := fill.TextColor().Hex()
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" %s font-size="%.1f" fill="%s">%s</text>`+"\n",
		x+4, y+size+2, fontFamily, size, text, escapeXML(truncateLabel(label, w-6, size)))
	if sub != "" && fits(h, size*2.4) {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" %s font-size="%.1f" fill="%s">%s</text>`+"\n",
			x+4, y+2*size+4, fontFamily, size*0.85, text, escapeXML(truncateLabel(sub, w-6, size*0.85)))
	}
}

func (r svgRenderer) renderBoundaries(buf *bytes.Buffer, m layout.Model, xs []float64, top float64) {
	left, right := xs[0], xs[len(xs)-1]

	// Outline of each block; top and bottom edges come from the boundaries.
	for _, b := range m.Blocks {
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n", left, top+b.Top, left, top+b.Bottom)
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n", right, top+b.Top, right, top+b.Bottom)
		for _, x := range xs[1 : len(xs)-1] {
			fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#666" stroke-width="0.5"/>`+"\n", x, top+b.Top, x, top+b.Bottom)
		}
	}

	first, last := m.Blocks[0], m.Blocks[len(m.Blocks)-1]
	hline(buf, left, right, top+first.Top)
	hline(buf, left, right, top+last.Bottom)

	for _, bd := range m.Boundaries {
		upper, lower := m.Blocks[bd.Upper], m.Blocks[bd.Upper+1]
		switch bd.Kind {
		case layout.BoundaryStraight:
			hline(buf, left, right, top+bd.Y)
		case layout.BoundaryGap:
			hline(buf, left, right, top+upper.Bottom)
			hline(buf, left, right, top+lower.Top)
		}
	}

	for _, u := range m.Unconformities {
		end := xs[min(u.Span, len(xs)-1)]
		fmt.Fprintf(buf, `  <path class="unconformity" d="%s" fill="none" stroke="black" stroke-width="1.5"><title>%s</title></path>`+"\n",
			wavePath(left, end, top+u.Y, u.Amplitude, u.Wavelength), fmt.Sprintf("%.2f Ma gap", u.Gap))
	}
}

func hline(buf *bytes.Buffer, x0, x1, y float64) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n", x0, y, x1, y)
}

func (r svgRenderer) renderDepthScale(buf *bytes.Buffer, markers []layout.DepthMarker, x, top float64) {
	if len(markers) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="2"/>`+"\n",
		x, top+markers[0].Y, x, top+markers[len(markers)-1].Y)
	for _, dm := range markers {
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n", x, top+dm.Y, x+8, top+dm.Y)
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" %s font-size="10">%.1fm</text>`+"\n", x+12, top+dm.LabelY+4, fontFamily, dm.Depth)
	}
}
