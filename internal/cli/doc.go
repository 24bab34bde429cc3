// Package cli implements the command-line interface for monoid-roster.
//
// The cli package provides the Cobra-based commands that load a roster from
// the Monoid website, an exported file, the bundled template or the saved
// session; edit scores and students; and export the roster back into the
// PHP page of the site. Every editing command works on the saved session, so
// a sequence of commands behaves like one editing session in a single
// window.
package cli
