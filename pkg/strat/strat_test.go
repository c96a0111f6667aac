package strat

import (
	"testing"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

func TestRockLookup(t *testing.T) {
	tests := []struct {
		rock     RockType
		category Category
		pattern  string
		display  string
	}{
		{Sandstone, CategorySedimentary, "607", "Sandstone"},
		{Limestone, CategorySedimentary, "627", "Limestone"},
		{ShaleCarbonaceousBlackShale, CategorySedimentary, "624", "Shale Carbonaceous Black Shale"},
		{Granite, CategoryIgneous, "718", "Granite"},
		{Schist, CategoryMetamorphic, "705", "Schist"},
		{Unknown, CategoryOther, PatternNone, "Unknown"},
		{RockType("kimberlite"), CategoryOther, PatternNone, "Kimberlite"},
	}
	for _, tt := range tests {
		t.Run(string(tt.rock), func(t *testing.T) {
			if got := tt.rock.Category(); got != tt.category {
				t.Errorf("Category() = %v, want %v", got, tt.category)
			}
			if got := tt.rock.Pattern(); got != tt.pattern {
				t.Errorf("Pattern() = %q, want %q", got, tt.pattern)
			}
			if got := tt.rock.DisplayName(); got != tt.display {
				t.Errorf("DisplayName() = %q, want %q", got, tt.display)
			}
		})
	}
}

func TestRockTypesByCategory(t *testing.T) {
	got := RockTypesByCategory(CategoryIgneous)
	want := []RockType{Granite, IgneousRock, VolcanicRock}
	if len(got) != len(want) {
		t.Fatalf("RockTypesByCategory(igneous) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if n := len(RockTypes()); n != len(rocks) {
		t.Errorf("len(RockTypes()) = %d, want %d", n, len(rocks))
	}
}

func TestParseRockType(t *testing.T) {
	if r, ok := ParseRockType("Shale Mudstone"); !ok || r != ShaleMudstone {
		t.Errorf("ParseRockType(display) = %v, %v", r, ok)
	}
	if r, ok := ParseRockType("granite"); !ok || r != Granite {
		t.Errorf("ParseRockType(key) = %v, %v", r, ok)
	}
	if _, ok := ParseRockType("kimberlite"); ok {
		t.Error("ParseRockType(unknown) ok = true")
	}
}

func TestEnvironmentLookup(t *testing.T) {
	if got := EnvDeepMarine.Color().Hex(); got != "#4D93D9" {
		t.Errorf("DEEP_MARINE color = %s", got)
	}
	if got := EnvShallowMarineShelf.DisplayName(); got != "Shallow marine / Shelf" {
		t.Errorf("display name = %q", got)
	}
	if e, ok := EnvironmentByDisplayName("Open marine"); !ok || e != EnvOpenMarine {
		t.Errorf("EnvironmentByDisplayName = %v, %v", e, ok)
	}
	if _, ok := EnvironmentByDisplayName("Lagoon"); ok {
		t.Error("unknown display name resolved")
	}
	if EnvNone.Known() || EnvNone.DisplayName() != "" {
		t.Error("EnvNone should be unknown with empty display name")
	}
	if len(Environments) != len(environments) {
		t.Errorf("Environments lists %d of %d", len(Environments), len(environments))
	}
}

func TestAgeWindow(t *testing.T) {
	w := AgeWindow{From: 10, To: 50}
	tests := []struct {
		name              string
		young, old        float64
		contains, overlap bool
	}{
		{"inside", 20, 30, true, true},
		{"exact", 10, 50, true, true},
		{"straddles young edge", 5, 15, false, true},
		{"straddles old edge", 45, 60, false, true},
		{"touches old edge", 50, 60, false, false},
		{"before", 0, 5, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayer("x", 1, Sandstone, tt.young, tt.old)
			if got := w.Contains(l); got != tt.contains {
				t.Errorf("Contains() = %v, want %v", got, tt.contains)
			}
			if got := w.Overlaps(l); got != tt.overlap {
				t.Errorf("Overlaps() = %v, want %v", got, tt.overlap)
			}
		})
	}

	if !AllTime().Contains(NewLayer("x", 1, Sandstone, 0, 4000)) {
		t.Error("AllTime() should contain everything")
	}
	if err := (AgeWindow{From: 5, To: 1}).Validate(); !errors.Is(err, errors.ErrCodeInvalidRange) {
		t.Errorf("Validate() = %v, want INVALID_RANGE", err)
	}
}

func TestRanges(t *testing.T) {
	if _, _, err := AgeRange(nil); !errors.Is(err, errors.ErrCodeEmptyColumn) {
		t.Errorf("AgeRange(nil) error = %v, want EMPTY_COLUMN", err)
	}
	if _, _, err := DepthRange([]Layer{NewLayer("x", 1, Sandstone, 1, 2)}); !errors.Is(err, errors.ErrCodeEmptyColumn) {
		t.Errorf("DepthRange(no tops) error = %v, want EMPTY_COLUMN", err)
	}

	layers := []Layer{
		topLayer("A", 30, 10),
		NewLayer("B", 5, Sandstone, 2, 80),
		topLayer("C", 5, 10),
	}
	lo, hi, err := DepthRange(layers)
	if err != nil || lo != 5 || hi != 40 {
		t.Errorf("DepthRange() = %v, %v, %v, want 5, 40, nil", lo, hi, err)
	}
	lo, hi, err = AgeRange(layers)
	if err != nil || lo != 2 || hi != 80 {
		t.Errorf("AgeRange() = %v, %v, %v, want 2, 80, nil", lo, hi, err)
	}
}
