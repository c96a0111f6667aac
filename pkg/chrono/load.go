package chrono

import (
	"embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

//go:embed data/*.json
var builtin embed.FS

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in ICS 2023 reference table. The table is parsed
// once and shared.
func Default() *Table {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(builtin, "data")
		if err != nil {
			panic(fmt.Sprintf("chrono: embedded reference data: %v", err))
		}
		t, err := LoadFS(sub)
		if err != nil {
			panic(fmt.Sprintf("chrono: embedded reference data: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// LoadDir reads eras.json, periods.json, epochs.json and ages.json from dir.
// A missing file leaves its level empty; an unreadable or malformed file is an
// ErrCodeInvalidReference error.
func LoadDir(dir string) (*Table, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS is LoadDir over an fs.FS.
func LoadFS(fsys fs.FS) (*Table, error) {
	var levels [4][]Unit
	for _, lvl := range Levels {
		units, err := loadLevel(fsys, lvl)
		if err != nil {
			return nil, err
		}
		levels[lvl] = units
	}
	return NewTable(levels[LevelEra], levels[LevelPeriod], levels[LevelEpoch], levels[LevelAge])
}

func loadLevel(fsys fs.FS, lvl Level) ([]Unit, error) {
	f, err := fsys.Open(lvl.FileName())
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidReference, err, "open %s", lvl.FileName())
	}
	defer f.Close()

	units, err := ReadLevel(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReference, err, "read %s", lvl.FileName())
	}
	return units, nil
}

// ReadLevel decodes one level file: a JSON array of
// {name, start_age, end_age, color} objects.
func ReadLevel(r io.Reader) ([]Unit, error) {
	var units []Unit
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&units); err != nil {
		return nil, err
	}
	return units, nil
}

// WriteLevel encodes units in the level file format.
func WriteLevel(w io.Writer, units []Unit) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(units)
}
