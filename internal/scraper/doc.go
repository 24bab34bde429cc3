// Package scraper fetches the Monoid solver page and extracts its roster
// table.
//
// The extractor accepts hand-written HTML fragments and parses them with a
// lenient HTML5 parser. The first table body holds a header row of th cells
// followed by one row of td cells per student. The website nests this table
// inside an outer layout table; exported files carry it directly in the body.
// Extracted rows are sorted by the case-insensitive text of the first column.
package scraper
