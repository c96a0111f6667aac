// Package render turns layout models into files.
//
// # Overview
//
// The layout engine in [layout] produces a geometry-only [layout.Model].
// Everything visual lives below this package:
//
//   - [sink]: SVG and JSON output of a model
//   - [ToPDF] and [ToPNG]: conversion of any SVG via rsvg-convert
//
// # Usage
//
//	m, err := layout.Compute(layers, chrono.NewMapper(chrono.Default()), 800)
//	svg := sink.RenderSVG(m, sink.WithTitle("Well 7"))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)
//
// Conversion needs librsvg on PATH. [Available] reports whether it is
// installed; without it the converters return an UNSUPPORTED error.
//
// [layout]: github.com/vijaymanbajracharya/stratcol/pkg/layout
// [layout.Model]: github.com/vijaymanbajracharya/stratcol/pkg/layout#Model
// [sink]: github.com/vijaymanbajracharya/stratcol/pkg/render/sink
package render
