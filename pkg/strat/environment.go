package strat

import (
	"github.com/vijaymanbajracharya/stratcol/pkg/palette"
)

// Environment is a depositional environment key such as "FLUVIAL".
type Environment string

// Depositional environments. EnvNone means no environment was recorded.
const (
	EnvNone               Environment = ""
	EnvContinental        Environment = "CONTINENTAL"
	EnvHighland           Environment = "HIGHLAND"
	EnvEolian             Environment = "EOLIAN"
	EnvGlacial            Environment = "GLACIAL"
	EnvLacustrine         Environment = "LACUSTRINE"
	EnvFluvial            Environment = "FLUVIAL"
	EnvDeltaic            Environment = "DELTAIC"
	EnvCoastal            Environment = "COASTAL"
	EnvOpenMarine         Environment = "OPEN_MARINE"
	EnvShallowMarineShelf Environment = "SHALLOW_MARINE_SHELF"
	EnvSlopeMarine        Environment = "SLOPE_MARINE"
	EnvDeepMarine         Environment = "DEEP_MARINE"
)

// Environments lists the known environments from continental to deep marine.
var Environments = []Environment{
	EnvContinental, EnvHighland, EnvEolian, EnvGlacial, EnvLacustrine, EnvFluvial,
	EnvDeltaic, EnvCoastal, EnvOpenMarine, EnvShallowMarineShelf, EnvSlopeMarine, EnvDeepMarine,
}

type envInfo struct {
	display string
	color   palette.RGB
}

var environments = map[Environment]envInfo{
	EnvContinental:        {"Continental", palette.MustHex("#CC6600")},
	EnvHighland:           {"Highland", palette.MustHex("#E49EDD")},
	EnvEolian:             {"Eolian", palette.MustHex("#FBE2D5")},
	EnvGlacial:            {"Glacial", palette.MustHex("#F2F2F2")},
	EnvLacustrine:         {"Lacustrine", palette.MustHex("#92D050")},
	EnvFluvial:            {"Fluvial", palette.MustHex("#DAF2D0")},
	EnvDeltaic:            {"Deltaic", palette.MustHex("#FFFF00")},
	EnvCoastal:            {"Coastal", palette.MustHex("#F7C7AC")},
	EnvOpenMarine:         {"Open marine", palette.MustHex("#A6C9EC")},
	EnvShallowMarineShelf: {"Shallow marine / Shelf", palette.MustHex("#DAE9F8")},
	EnvSlopeMarine:        {"Slope marine", palette.MustHex("#D0D0D0")},
	EnvDeepMarine:         {"Deep marine", palette.MustHex("#4D93D9")},
}

// Known reports whether e is one of the listed environments.
func (e Environment) Known() bool {
	_, ok := environments[e]
	return ok
}

// DisplayName returns the human-readable name, "" for EnvNone or unknown keys.
func (e Environment) DisplayName() string {
	return environments[e].display
}

// Color returns the environment's fill colour. Unknown keys get
// palette.Grey.
func (e Environment) Color() palette.RGB {
	if info, ok := environments[e]; ok {
		return info.color
	}
	return palette.Grey
}

// EnvironmentByDisplayName resolves a display name back to its key.
func EnvironmentByDisplayName(name string) (Environment, bool) {
	for _, e := range Environments {
		if environments[e].display == name {
			return e, true
		}
	}
	return EnvNone, false
}
