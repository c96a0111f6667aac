package chrono

import (
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

// Result holds the units of every level that overlap a queried age span.
// Within a level, units keep the table's ascending age order.
type Result struct {
	Eras    []Unit `json:"eras"`
	Periods []Unit `json:"periods"`
	Epochs  []Unit `json:"epochs"`
	Ages    []Unit `json:"ages"`
}

// Level returns the matches for one level.
func (r Result) Level(l Level) []Unit {
	switch l {
	case LevelEra:
		return r.Eras
	case LevelPeriod:
		return r.Periods
	case LevelEpoch:
		return r.Epochs
	case LevelAge:
		return r.Ages
	}
	return nil
}

// Len returns the number of matched units across all levels.
func (r Result) Len() int {
	return len(r.Eras) + len(r.Periods) + len(r.Epochs) + len(r.Ages)
}

// Mapper answers overlap queries against a reference table. It holds no
// mutable state and is safe for concurrent use.
type Mapper struct {
	table *Table
}

// NewMapper returns a mapper over t. A nil table behaves like an empty one.
func NewMapper(t *Table) *Mapper {
	if t == nil {
		t = Empty()
	}
	return &Mapper{table: t}
}

// Table returns the reference table the mapper queries.
func (m *Mapper) Table() *Table {
	if m == nil {
		return Empty()
	}
	return m.table
}

// Map returns every unit whose interval overlaps [minAge, maxAge].
//
// Overlap is strict: a unit matches when minAge < unit.EndAge and
// maxAge > unit.StartAge, so spans that only touch a boundary do not match.
// Negative ages or minAge > maxAge yield an ErrCodeInvalidRange error.
func (m *Mapper) Map(minAge, maxAge float64) (Result, error) {
	if minAge < 0 || maxAge < 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidRange, "ages must be non-negative (got %g, %g)", minAge, maxAge)
	}
	if minAge > maxAge {
		return Result{}, errors.New(errors.ErrCodeInvalidRange, "min age %g exceeds max age %g", minAge, maxAge)
	}

	t := m.Table()
	return Result{
		Eras:    overlapping(t.Units(LevelEra), minAge, maxAge),
		Periods: overlapping(t.Units(LevelPeriod), minAge, maxAge),
		Epochs:  overlapping(t.Units(LevelEpoch), minAge, maxAge),
		Ages:    overlapping(t.Units(LevelAge), minAge, maxAge),
	}, nil
}

func overlapping(units []Unit, minAge, maxAge float64) []Unit {
	var out []Unit
	for _, u := range units {
		if minAge < u.EndAge && maxAge > u.StartAge {
			out = append(out, u)
		}
	}
	return out
}
