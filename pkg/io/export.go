package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// WriteJSON encodes layers as a column document and writes it to w.
// Optional fields are always present, as null when unset, so the output
// round-trips exactly through [ReadJSON].
func WriteJSON(w io.Writer, layers []strat.Layer, createdWith string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(layers, createdWith)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML is WriteJSON for YAML output.
func WriteYAML(w io.Writer, layers []strat.Layer, createdWith string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(layers, createdWith)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Export writes layers to path, as YAML when the extension says so.
func Export(path string, layers []strat.Layer, createdWith string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if IsYAML(path) {
		err = WriteYAML(f, layers, createdWith)
	} else {
		err = WriteJSON(f, layers, createdWith)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
