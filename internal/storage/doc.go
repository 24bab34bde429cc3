// Package storage persists the working session of the roster tool.
//
// A session is the loaded table (headers, rows and the export selection)
// together with the source it was loaded from. It is stored as indented JSON
// in a single file inside the data directory, by default
// ~/.local/share/monoid-roster/savedApplicationState.json.
package storage
