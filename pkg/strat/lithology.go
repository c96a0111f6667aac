package strat

import (
	"sort"
	"strings"
)

// RockType identifies a lithology by its lower-case key ("sandstone",
// "shale_mudstone", ...). Keys outside the lookup table are accepted and
// treated as [CategoryOther] with no pattern.
type RockType string

// Sedimentary rocks.
const (
	Conglomerate                 RockType = "conglomerate"
	Breccia                      RockType = "breccia"
	Sandstone                    RockType = "sandstone"
	SandstoneCrossbedded         RockType = "sandstone_crossbedded"
	SandstoneCalcareous          RockType = "sandstone_calcareous"
	Siltstone                    RockType = "siltstone"
	ShaleMudstone                RockType = "shale_mudstone"
	ShaleCarbonaceousBlackShale  RockType = "shale_carbonaceous_black_shale"
	SandyShale                   RockType = "sandy_shale"
	ShaleySandstone              RockType = "shaley_sandstone"
	Limestone                    RockType = "limestone"
	LimestoneOolitic             RockType = "limestone_oolitic"
	SandyLimestone               RockType = "sandy_limestone"
	Dolostone                    RockType = "dolostone"
	ShaleCalcareousMarl          RockType = "shale_calcareous_marl"
	Chalk                        RockType = "chalk"
	Coal                         RockType = "coal"
	Chert                        RockType = "chert"
	InterbeddedSandstoneAndShale RockType = "interbedded_sandstone_and_shale"
	InterbeddedLimestoneAndShale RockType = "interbedded_limestone_and_shale"
	SaltEvaporite                RockType = "salt_evaporite"
	OilShale                     RockType = "oil_shale"
	Tillite                      RockType = "tillite"
)

// Igneous rocks.
const (
	IgneousRock  RockType = "igneous_rock"
	Granite      RockType = "granite"
	VolcanicRock RockType = "volcanic_rock"
)

// Metamorphic rocks.
const (
	MetamorphicRock RockType = "metamorphic_rock"
	Gneiss          RockType = "gneiss"
	Quartzite       RockType = "quartzite"
	Schist          RockType = "schist"
)

// Unknown is the catch-all lithology.
const Unknown RockType = "unknown"

// Category groups rock types.
type Category string

// Rock categories.
const (
	CategorySedimentary Category = "sedimentary"
	CategoryIgneous     Category = "igneous"
	CategoryMetamorphic Category = "metamorphic"
	CategoryOther       Category = "other"
)

// Categories lists the categories in display order.
var Categories = []Category{CategorySedimentary, CategoryIgneous, CategoryMetamorphic, CategoryOther}

// PatternNone is the pattern of rock types without an FGDC fill.
const PatternNone = "none"

type rockInfo struct {
	category Category
	pattern  string
}

// rocks maps each known rock type to its category and FGDC pattern code.
var rocks = map[RockType]rockInfo{
	Conglomerate:                 {CategorySedimentary, "602"},
	Breccia:                      {CategorySedimentary, "605"},
	Sandstone:                    {CategorySedimentary, "607"},
	SandstoneCrossbedded:         {CategorySedimentary, "610"},
	SandstoneCalcareous:          {CategorySedimentary, "613"},
	Siltstone:                    {CategorySedimentary, "616"},
	ShaleMudstone:                {CategorySedimentary, "620"},
	ShaleCarbonaceousBlackShale:  {CategorySedimentary, "624"},
	SandyShale:                   {CategorySedimentary, "619"},
	ShaleySandstone:              {CategorySedimentary, "612"},
	Limestone:                    {CategorySedimentary, "627"},
	LimestoneOolitic:             {CategorySedimentary, "635"},
	SandyLimestone:               {CategorySedimentary, "636"},
	Dolostone:                    {CategorySedimentary, "642"},
	ShaleCalcareousMarl:          {CategorySedimentary, "623"},
	Chalk:                        {CategorySedimentary, "626"},
	Coal:                         {CategorySedimentary, "658"},
	Chert:                        {CategorySedimentary, "649"},
	InterbeddedSandstoneAndShale: {CategorySedimentary, "670"},
	InterbeddedLimestoneAndShale: {CategorySedimentary, "677"},
	SaltEvaporite:                {CategorySedimentary, "668"},
	OilShale:                     {CategorySedimentary, "625"},
	Tillite:                      {CategorySedimentary, "681"},

	IgneousRock:  {CategoryIgneous, "721"},
	Granite:      {CategoryIgneous, "718"},
	VolcanicRock: {CategoryIgneous, "724"},

	MetamorphicRock: {CategoryMetamorphic, "701"},
	Gneiss:          {CategoryMetamorphic, "708"},
	Quartzite:       {CategoryMetamorphic, "702"},
	Schist:          {CategoryMetamorphic, "705"},

	Unknown: {CategoryOther, PatternNone},
}

// Known reports whether r is in the lookup table.
func (r RockType) Known() bool {
	_, ok := rocks[r]
	return ok
}

// Category returns the rock's category, CategoryOther when unknown.
func (r RockType) Category() Category {
	if info, ok := rocks[r]; ok {
		return info.category
	}
	return CategoryOther
}

// Pattern returns the FGDC pattern code, PatternNone when unknown.
func (r RockType) Pattern() string {
	if info, ok := rocks[r]; ok {
		return info.pattern
	}
	return PatternNone
}

// DisplayName title-cases the key: "shale_mudstone" -> "Shale Mudstone".
func (r RockType) DisplayName() string {
	words := strings.Fields(strings.ReplaceAll(string(r), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RockTypesByCategory lists the known rock types of c sorted by key.
func RockTypesByCategory(c Category) []RockType {
	var out []RockType
	for r, info := range rocks {
		if info.category == c {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RockTypes lists every known rock type grouped by category in display
// order, sorted by key within a category.
func RockTypes() []RockType {
	var out []RockType
	for _, c := range Categories {
		out = append(out, RockTypesByCategory(c)...)
	}
	return out
}

// ParseRockType resolves a key or a display name to a known rock type.
func ParseRockType(s string) (RockType, bool) {
	key := RockType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	if key.Known() {
		return key, true
	}
	return "", false
}
