// Package chrono holds the geochronologic reference table and answers
// "which units overlap this age span" queries.
//
// # Reference Data
//
// A [Table] stores four independent levels ([LevelEra], [LevelPeriod],
// [LevelEpoch], [LevelAge]), each a slice of [Unit] sorted by age. Ages are
// in millions of years before present (Ma); StartAge is the younger bound.
//
// Tables come from a directory of JSON files ([LoadDir]) or from the
// embedded ICS 2023 chart ([Default]). Missing files leave a level empty,
// which makes every query against that level return nothing.
//
// # Queries
//
// [Mapper.Map] scans each level linearly and keeps units that strictly
// overlap the requested span:
//
//	m := chrono.NewMapper(chrono.Default())
//	res, err := m.Map(60, 70)
//	// res.Eras    -> Cenozoic, Mesozoic
//	// res.Periods -> Paleogene, Cretaceous
//
// Tables are read-only once built, so a single Mapper can be shared between
// goroutines.
package chrono
