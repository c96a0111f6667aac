// Package store persists named stratigraphic columns.
//
// Every backend stores the same [record]: the column's identity and
// timestamps plus the layers in the column-file [stratio.Document] form, so
// a stored column decodes with exactly the rules used for files on disk.
//
//   - [MemoryStore]: map-backed, for tests and single-process servers
//   - [FileStore]: one JSON file per column under a directory
//   - [MongoStore]: a MongoDB collection keyed by column id
//
// Missing columns are reported with errors.ErrCodeNotFound.
//
// [stratio.Document]: github.com/vijaymanbajracharya/stratcol/pkg/io#Document
package store

import (
	"context"
	"time"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	stratio "github.com/vijaymanbajracharya/stratcol/pkg/io"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// CreatedWith is recorded in the metadata of stored documents.
const CreatedWith = "stratcol store"

// Column is a stored column.
type Column struct {
	ID        string
	Name      string
	Layers    []strat.Layer
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary lists a column without decoding its layers.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Layers    int       `json:"layers"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a column repository. Put creates or replaces; Delete of a
// missing column reports NOT_FOUND.
type Store interface {
	Get(ctx context.Context, id string) (*Column, error)
	Put(ctx context.Context, c *Column) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Summary, error)
	Close() error
}

type record struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name" bson:"name"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
	Document  stratio.Document `json:"document" bson:"document"`
}

// prepare validates c, stamps its times and converts it to a record.
func prepare(c *Column, now time.Time) (record, error) {
	if err := errors.ValidateColumnID(c.ID); err != nil {
		return record{}, err
	}
	for i, l := range c.Layers {
		if err := l.Validate(); err != nil {
			return record{}, errors.Wrap(errors.ErrCodeInvalidLayer, err, "layer %d", i)
		}
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	return record{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Document:  stratio.NewDocument(c.Layers, CreatedWith),
	}, nil
}

func (r record) column() (*Column, error) {
	layers, err := r.Document.Decode()
	if err != nil {
		return nil, err
	}
	return &Column{
		ID:        r.ID,
		Name:      r.Name,
		Layers:    layers,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func (r record) summary() Summary {
	return Summary{ID: r.ID, Name: r.Name, Layers: len(r.Document.Layers), UpdatedAt: r.UpdatedAt}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "column %q not found", id)
}
