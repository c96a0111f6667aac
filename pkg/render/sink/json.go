package sink

import (
	"encoding/json"

	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title  string
	indent bool
}

// WithJSONTitle records a title in the output.
func WithJSONTitle(s string) JSONOption { return func(r *jsonRenderer) { r.title = s } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Title string `json:"title,omitempty"`
	layout.Model
	Blocks []jsonBlock `json:"blocks"`
}

// jsonBlock flattens the lookups a consumer would otherwise repeat.
type jsonBlock struct {
	layout.Block
	Height      float64 `json:"height"`
	Category    string  `json:"category"`
	Pattern     string  `json:"pattern"`
	RockDisplay string  `json:"rock_display"`
}

// RenderJSON encodes the model together with derived per-block fields
// (height, rock category, FGDC pattern, display name).
func RenderJSON(m layout.Model, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Title: r.title, Model: m, Blocks: make([]jsonBlock, len(m.Blocks))}
	for i, b := range m.Blocks {
		out.Blocks[i] = jsonBlock{
			Block:       b,
			Height:      b.Height(),
			Category:    string(b.Layer.Category()),
			Pattern:     b.Layer.Pattern(),
			RockDisplay: b.Layer.RockType.DisplayName(),
		}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
