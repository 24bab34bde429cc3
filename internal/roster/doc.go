// Package roster holds the Monoid roster: a header list and rows of cell
// text, one row per student.
//
// Every row has one cell per header, positionally matched. Rows are kept in
// ascending case-insensitive order of the name column; insertions keep that
// order instead of re-sorting. Scores are stored as text only and are
// interpreted through the points package when a sum is needed.
package roster
