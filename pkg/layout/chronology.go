package layout

// layoutChronology stacks layers youngest first with heights proportional
// to age span, subject to a height floor, and marks an unconformity wherever
// the age gap to the next layer exceeds UnconformityThreshold.
func layoutChronology(items []item, height float64, cfg config) (geometry, error) {
	sortByYoungAge(items)

	spans := make([]float64, len(items))
	for i, it := range items {
		spans[i] = it.layer.AgeSpan()
	}

	heights, scale := floorHeights(spans, height, cfg.minHeight)
	blocks := stack(items, heights)
	g := geometry{scale: scale, blocks: blocks}

	for i := 0; i < len(items)-1; i++ {
		gap := items[i+1].layer.YoungAge - items[i].layer.OldAge
		b := Boundary{Upper: i, Y: blocks[i].Bottom, Kind: BoundaryStraight}
		if gap > UnconformityThreshold {
			b.Kind = BoundaryUnconformity
			g.unconformities = append(g.unconformities, Unconformity{
				Boundary:   len(g.boundaries),
				Y:          b.Y,
				Gap:        gap,
				Amplitude:  WaveAmplitude,
				Wavelength: WaveLength,
			})
		}
		g.boundaries = append(g.boundaries, b)
	}
	return g, nil
}

// floorHeights scales spans to sum to height while keeping every entry at
// or above floor. Entries raised to the floor are fixed and the remaining
// height is redistributed over the others until no entry falls short. It
// also returns the factor applied to the entries left above the floor.
// When the floor cannot be honoured for every entry the height is split
// evenly and the factor is zero.
func floorHeights(spans []float64, height, floor float64) ([]float64, float64) {
	n := len(spans)
	out := make([]float64, n)
	if floor*float64(n) >= height {
		for i := range out {
			out[i] = height / float64(n)
		}
		return out, 0
	}

	floored := make([]bool, n)
	for {
		remaining, total := height, 0.0
		for i, s := range spans {
			if floored[i] {
				remaining -= floor
			} else {
				total += s
			}
		}
		scale := remaining / total

		changed := false
		for i, s := range spans {
			if floored[i] {
				out[i] = floor
				continue
			}
			out[i] = s * scale
			if out[i] < floor {
				floored[i] = true
				changed = true
			}
		}
		if !changed {
			return out, scale
		}
	}
}
