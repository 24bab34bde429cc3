// Package points converts Monoid score cells between their display text and
// numeric values.
//
// Scores are displayed the way the Monoid site prints them: whole numbers
// without a fraction, fractions with a decimal comma ("3,5"), and "-" for a
// cell without points. Parsing is deliberately forgiving: any text that is
// not a number, including "-" and the empty string, counts as zero.
package points
