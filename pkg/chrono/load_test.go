package chrono

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirPartial(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "periods.json", `[
		{"name": "Neogene", "start_age": 2.58, "end_age": 23.03, "color": "#FFE619"},
		{"name": "Paleogene", "start_age": 23.03, "end_age": 66, "color": "#FD9A52"}
	]`)

	tbl, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if got := len(tbl.Units(LevelPeriod)); got != 2 {
		t.Errorf("periods = %d, want 2", got)
	}
	for _, lvl := range []Level{LevelEra, LevelEpoch, LevelAge} {
		if got := len(tbl.Units(lvl)); got != 0 {
			t.Errorf("%v units = %d, want 0", lvl, got)
		}
	}
	if c := tbl.Units(LevelPeriod)[1].Color.Hex(); c != "#FD9A52" {
		t.Errorf("color = %s, want #FD9A52", c)
	}
}

func TestLoadDirMissing(t *testing.T) {
	tbl, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if !tbl.IsEmpty() {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
}

func TestLoadDirMalformed(t *testing.T) {
	tests := map[string]string{
		"syntax":       `[{"name": "Broken"`,
		"bad color":    `[{"name": "X", "start_age": 0, "end_age": 1, "color": "red"}]`,
		"inverted":     `[{"name": "X", "start_age": 5, "end_age": 1, "color": "#000000"}]`,
		"unsorted":     `[{"name": "B", "start_age": 5, "end_age": 9, "color": "#000000"}, {"name": "A", "start_age": 0, "end_age": 5, "color": "#000000"}]`,
		"unknown keys": `[{"name": "X", "start": 0, "end_age": 1, "color": "#000000"}]`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "eras.json", content)
			_, err := LoadDir(dir)
			if !errors.Is(err, errors.ErrCodeInvalidReference) {
				t.Errorf("LoadDir() error = %v, want INVALID_REFERENCE", err)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	tbl := Default()
	for _, lvl := range Levels {
		if len(tbl.Units(lvl)) == 0 {
			t.Errorf("Default() has no %v units", lvl)
		}
	}
	if Default() != tbl {
		t.Error("Default() should return a shared table")
	}
}

func TestWriteReadLevel(t *testing.T) {
	units := Default().Units(LevelPeriod)[:3]

	var buf bytes.Buffer
	if err := WriteLevel(&buf, units); err != nil {
		t.Fatalf("WriteLevel() error: %v", err)
	}
	back, err := ReadLevel(&buf)
	if err != nil {
		t.Fatalf("ReadLevel() error: %v", err)
	}
	if len(back) != 3 {
		t.Fatalf("len = %d, want 3", len(back))
	}
	for i := range units {
		if back[i] != units[i] {
			t.Errorf("unit %d = %+v, want %+v", i, back[i], units[i])
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"era", LevelEra, false},
		{"Periods", LevelPeriod, false},
		{" epoch ", LevelEpoch, false},
		{"ages", LevelAge, false},
		{"eon", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
