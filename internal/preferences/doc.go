// Package preferences manages the settings of the roster tool.
//
// Settings live in an INI file (preferences.ini by default) with a [General]
// section for the launch behaviour and a [Header] section naming the roster
// columns the tool needs to understand: the name column, the sum column and
// the half-open index range of the per-release point columns. Keys missing
// from the file fall back to defaults; keys the tool does not know are kept
// when the file is saved.
package preferences
