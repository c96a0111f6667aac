// Package pkg holds the libraries behind stratcol, a stratigraphic column
// layout and chronostratigraphic mapping engine.
//
// # Overview
//
// A column is an ordered list of rock layers, youngest on top, each with a
// thickness, a lithology and an age range in Ma. The libraries turn such a
// column into a vertical layout where every layer is annotated with the
// geologic time units it spans, then draw it.
//
//	column file (JSON / YAML / TOML)
//	         ↓
//	    [io]      decode and validate layers
//	         ↓
//	    [strat]   column model, ordering, age windows
//	         ↓
//	    [chrono]  map each layer's age range to eras, periods, epochs, ages
//	         ↓
//	    [layout]  place blocks (thickness, chronology or formation-top mode)
//	         ↓
//	    [render]  SVG, JSON, PDF, PNG
//
// [pipeline] runs the whole chain and caches results through [cache].
// Saved columns live in a [store] backend (memory, file or MongoDB).
//
// # Quick Start
//
//	mapper := chrono.NewMapper(chrono.Default())
//	m, err := layout.Compute(layers, mapper, 800, layout.WithMode(layout.ModeChronology))
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(m, sink.WithTitle("Book Cliffs"))
//
// # Errors
//
// Every package reports failures through [errors], whose codes map to exit
// codes in the CLI and to HTTP statuses in the server.
//
// [io]: https://pkg.go.dev/github.com/vijaymanbajracharya/stratcol/pkg/io
// [strat]: https://pkg.go.dev/github.com/vijaymanbajracharya/stratcol/pkg/strat
// [chrono]: https://pkg.go.dev/github.com/vijaymanbajracharya/stratcol/pkg/chrono
// [layout]: https://pkg.go.dev/github.com/vijaymanbajracharya/stratcol/pkg/layout
// [render]: https://pkg.go.dev/github.com/vijaymanbajracharya/stratcol/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/vijaymanbajracharya/stratcol/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/vijaymanbajracharya/stratcol/pkg/cache
// [store]: https://pkg.go.dev/github.com/vijaymanbajracharya/stratcol/pkg/store
// [errors]: https://pkg.go.dev/github.com/vijaymanbajracharya/stratcol/pkg/errors
package pkg
