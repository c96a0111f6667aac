package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// rawDocument defers record decoding so errors can name the failing index.
type rawDocument struct {
	Layers   *[]json.RawMessage `json:"layers"`
	Metadata *Metadata          `json:"metadata"`
}

type rawYAMLDocument struct {
	Layers   *[]yaml.Node `yaml:"layers"`
	Metadata *Metadata    `yaml:"metadata"`
}

// ReadJSON decodes a column document from r.
//
// Loading is all-or-nothing: the first malformed record aborts with
// *errors.MalformedRecordError and no layers are returned. The metadata's
// total_layers, when present, must match the number of records. ReadJSON
// does not close r.
func ReadJSON(r io.Reader) ([]strat.Layer, Metadata, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, Metadata{}, &errors.MalformedRecordError{Index: -1, Field: "document", Reason: err.Error()}
	}
	if raw.Layers == nil {
		return nil, Metadata{}, &errors.MalformedRecordError{Index: -1, Field: "layers", Reason: "missing"}
	}

	doc := Document{Layers: make([]LayerRecord, len(*raw.Layers))}
	if raw.Metadata != nil {
		doc.Metadata = *raw.Metadata
	}
	for i, msg := range *raw.Layers {
		if err := json.Unmarshal(msg, &doc.Layers[i]); err != nil {
			return nil, Metadata{}, &errors.MalformedRecordError{Index: i, Field: "record", Reason: err.Error()}
		}
	}

	layers, err := doc.Decode()
	if err != nil {
		return nil, Metadata{}, err
	}
	return layers, doc.Metadata, nil
}

// ReadYAML is ReadJSON for YAML documents with the same field names.
func ReadYAML(r io.Reader) ([]strat.Layer, Metadata, error) {
	var raw rawYAMLDocument
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, Metadata{}, &errors.MalformedRecordError{Index: -1, Field: "document", Reason: err.Error()}
	}
	if raw.Layers == nil {
		return nil, Metadata{}, &errors.MalformedRecordError{Index: -1, Field: "layers", Reason: "missing"}
	}

	doc := Document{Layers: make([]LayerRecord, len(*raw.Layers))}
	if raw.Metadata != nil {
		doc.Metadata = *raw.Metadata
	}
	for i := range *raw.Layers {
		if err := (*raw.Layers)[i].Decode(&doc.Layers[i]); err != nil {
			return nil, Metadata{}, &errors.MalformedRecordError{Index: i, Field: "record", Reason: err.Error()}
		}
	}

	layers, err := doc.Decode()
	if err != nil {
		return nil, Metadata{}, err
	}
	return layers, doc.Metadata, nil
}

// Import reads a column file. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON.
func Import(path string) ([]strat.Layer, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Metadata{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, Metadata{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if IsYAML(path) {
		return ReadYAML(f)
	}
	return ReadJSON(f)
}

// IsYAML reports whether path has a YAML extension.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
