package io

import (
	"fmt"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// FormatVersion is written to metadata.version.
const FormatVersion = "1.0"

// Document is the persisted form of a column. Optional values are pointers
// so that absent fields are written as null and detected on read.
type Document struct {
	Layers   []LayerRecord `json:"layers" yaml:"layers" bson:"layers"`
	Metadata Metadata      `json:"metadata" yaml:"metadata" bson:"metadata"`
}

// Metadata describes the document.
type Metadata struct {
	Version     string `json:"version" yaml:"version" bson:"version"`
	CreatedWith string `json:"created_with" yaml:"created_with" bson:"created_with"`
	TotalLayers *int   `json:"total_layers" yaml:"total_layers" bson:"total_layers"`
}

// LayerRecord is one persisted layer.
type LayerRecord struct {
	Name         *string    `json:"name" yaml:"name" bson:"name"`
	Thickness    *float64   `json:"thickness" yaml:"thickness" bson:"thickness"`
	RockType     *string    `json:"rock_type" yaml:"rock_type" bson:"rock_type"`
	FormationTop *float64   `json:"formation_top" yaml:"formation_top" bson:"formation_top"`
	YoungAge     *float64   `json:"young_age" yaml:"young_age" bson:"young_age"`
	OldAge       *float64   `json:"old_age" yaml:"old_age" bson:"old_age"`
	DepEnv       *EnvRecord `json:"dep_env" yaml:"dep_env" bson:"dep_env"`
	Visible      *bool      `json:"visible" yaml:"visible" bson:"visible"`
	MinThickness *float64   `json:"min_thickness" yaml:"min_thickness" bson:"min_thickness"`
	MaxThickness *float64   `json:"max_thickness" yaml:"max_thickness" bson:"max_thickness"`
}

// EnvRecord is the persisted depositional environment.
type EnvRecord struct {
	Name        string `json:"name" yaml:"name" bson:"name"`
	DisplayName string `json:"display_name" yaml:"display_name" bson:"display_name"`
	Color       string `json:"color" yaml:"color" bson:"color"`
}

// NewDocument converts layers into their persisted form.
func NewDocument(layers []strat.Layer, createdWith string) Document {
	n := len(layers)
	doc := Document{
		Layers: make([]LayerRecord, n),
		Metadata: Metadata{
			Version:     FormatVersion,
			CreatedWith: createdWith,
			TotalLayers: &n,
		},
	}
	for i, l := range layers {
		doc.Layers[i] = NewLayerRecord(l)
	}
	return doc
}

// NewLayerRecord converts one layer.
func NewLayerRecord(l strat.Layer) LayerRecord {
	l = l.Clone()
	rock := string(l.RockType)
	rec := LayerRecord{
		Name:         &l.Name,
		Thickness:    &l.Thickness,
		RockType:     &rock,
		FormationTop: l.FormationTop,
		YoungAge:     &l.YoungAge,
		OldAge:       &l.OldAge,
		Visible:      &l.Visible,
		MinThickness: l.MinThickness,
		MaxThickness: l.MaxThickness,
	}
	if l.Environment != strat.EnvNone {
		rec.DepEnv = &EnvRecord{
			Name:        string(l.Environment),
			DisplayName: l.Environment.DisplayName(),
			Color:       l.Environment.Color().Hex(),
		}
	}
	return rec
}

// Decode converts the document back into layers. Any malformed record
// fails the whole document with *errors.MalformedRecordError.
func (d Document) Decode() ([]strat.Layer, error) {
	if d.Metadata.TotalLayers != nil && *d.Metadata.TotalLayers != len(d.Layers) {
		return nil, &errors.MalformedRecordError{
			Index:  -1,
			Field:  "metadata.total_layers",
			Reason: fmt.Sprintf("declares %d layers, document has %d", *d.Metadata.TotalLayers, len(d.Layers)),
		}
	}
	layers := make([]strat.Layer, len(d.Layers))
	for i, rec := range d.Layers {
		l, err := rec.decode(i)
		if err != nil {
			return nil, err
		}
		layers[i] = l
	}
	return layers, nil
}

// Layer converts a single record; index is only used in error reports.
func (r LayerRecord) Layer(index int) (strat.Layer, error) { return r.decode(index) }

func (r LayerRecord) decode(index int) (strat.Layer, error) {
	malformed := func(field, format string, args ...any) error {
		return &errors.MalformedRecordError{Index: index, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	switch {
	case r.Name == nil:
		return strat.Layer{}, malformed("name", "missing")
	case r.Thickness == nil:
		return strat.Layer{}, malformed("thickness", "missing")
	case r.RockType == nil:
		return strat.Layer{}, malformed("rock_type", "missing")
	case r.YoungAge == nil:
		return strat.Layer{}, malformed("young_age", "missing")
	case r.OldAge == nil:
		return strat.Layer{}, malformed("old_age", "missing")
	}

	rock := strat.RockType(*r.RockType)
	if !rock.Known() {
		return strat.Layer{}, malformed("rock_type", "unknown rock type %q", *r.RockType)
	}

	l := strat.Layer{
		Name:         *r.Name,
		Thickness:    *r.Thickness,
		RockType:     rock,
		FormationTop: r.FormationTop,
		YoungAge:     *r.YoungAge,
		OldAge:       *r.OldAge,
		Visible:      true,
		MinThickness: r.MinThickness,
		MaxThickness: r.MaxThickness,
	}
	if r.Visible != nil {
		l.Visible = *r.Visible
	}

	if r.DepEnv != nil {
		env, err := r.DepEnv.environment()
		if err != nil {
			return strat.Layer{}, malformed("dep_env", "%v", err)
		}
		l.Environment = env
	}

	if err := l.Validate(); err != nil {
		return strat.Layer{}, malformed("layer", "%s", errors.UserMessage(err))
	}
	return l.Clone(), nil
}

// environment resolves by key first, then by display name.
func (e EnvRecord) environment() (strat.Environment, error) {
	if e.Name == "" && e.DisplayName == "" {
		return strat.EnvNone, nil
	}
	if env := strat.Environment(e.Name); env.Known() {
		return env, nil
	}
	if env, ok := strat.EnvironmentByDisplayName(e.DisplayName); ok {
		return env, nil
	}
	return strat.EnvNone, fmt.Errorf("unknown environment %q", e.Name)
}
