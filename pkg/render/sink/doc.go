// Package sink writes a [layout.Model] in concrete output formats.
//
// [RenderSVG] draws the column: one header per column kind, a group per
// layer with its chronostratigraphic bands, environment cell and lithology
// cell, straight or doubled boundaries, and a wavy path for each
// unconformity. Lithology cells carry a data-pattern attribute with the
// FGDC pattern code so a stylesheet can swap in hatch fills.
//
// [RenderJSON] encodes the model with per-block derived fields for clients
// that draw their own graphics. [RenderPDF] and [RenderPNG] convert the SVG
// through librsvg.
//
// [layout.Model]: github.com/vijaymanbajracharya/stratcol/pkg/layout#Model
package sink
