// Package export renders a roster into the PHP page served by the Monoid
// website.
//
// The layout is fixed: a preamble with the date of the export and the school
// year, a column group with hardcoded widths, a header row and a fixed ten
// field template per student. The consuming site parses exactly this markup,
// so widths, comments and the numeric character references used for
// non-ASCII text must stay as they are.
package export
