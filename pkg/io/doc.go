// Package io reads and writes column files.
//
// # Format
//
// A column file is a JSON (or YAML) object with a layers array and a
// metadata object:
//
//	{
//	  "layers": [
//	    {
//	      "name": "Dakota",
//	      "thickness": 30,
//	      "rock_type": "sandstone",
//	      "formation_top": 120,
//	      "young_age": 95,
//	      "old_age": 100,
//	      "dep_env": {"name": "FLUVIAL", "display_name": "Fluvial", "color": "#DAF2D0"},
//	      "visible": true,
//	      "min_thickness": null,
//	      "max_thickness": null
//	    }
//	  ],
//	  "metadata": {"version": "1.0", "created_with": "stratcol", "total_layers": 1}
//	}
//
// Optional fields (formation_top, dep_env, min_thickness, max_thickness) are
// always written, as null when unset. On read, a missing visible flag
// defaults to true and dep_env is resolved by name, falling back to
// display_name.
//
// # Import
//
// [ReadJSON], [ReadYAML] and [Import] are all-or-nothing: any record that
// is missing a required field, names an unknown rock type or environment, or
// breaks a layer invariant aborts the load with
// *errors.MalformedRecordError carrying the record index and field.
//
//	layers, meta, err := io.Import("column.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// [WriteJSON], [WriteYAML] and [Export] produce documents that [Import]
// reads back identically. [Document] is exported for stores that persist
// the same shape elsewhere (BSON in MongoDB).
package io
