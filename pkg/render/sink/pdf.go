package sink

import (
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/render"
)

// RasterOption configures PDF and PNG rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithSVGOptions passes options through to the underlying SVG renderer.
func WithSVGOptions(opts ...SVGOption) RasterOption {
	return func(r *rasterRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0). Ignored for PDF.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) { r.scale = s }
}

func newRasterRenderer(opts []RasterOption) rasterRenderer {
	r := rasterRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderPDF renders the model as PDF via SVG conversion.
func RenderPDF(m layout.Model, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts)
	return render.ToPDF(RenderSVG(m, r.svgOpts...))
}

// RenderPNG renders the model as PNG via SVG conversion.
func RenderPNG(m layout.Model, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts)
	return render.ToPNG(RenderSVG(m, r.svgOpts...), r.scale)
}
