package points

import (
	"math"
	"strconv"
	"strings"
)

// Empty is the cell text used for a score of zero.
const Empty = "-"

// ParseScore converts a score cell into a number.
// Both "3.5" and "3,5" parse to 3.5. Unparsable text yields 0.
func ParseScore(text string) float64 {
	text = strings.TrimSpace(text)

	if v, ok := parseFinite(text); ok {
		return v
	}

	// Retry with a decimal comma
	if v, ok := parseFinite(strings.ReplaceAll(text, ",", ".")); ok {
		return v
	}

	return 0
}

// parseFinite parses text as a float and rejects NaN and infinities.
func parseFinite(text string) (float64, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatScore converts a number into the display text of a score cell.
// Zero becomes "-", whole numbers drop their fraction and everything else
// uses a decimal comma.
func FormatScore(score float64) string {
	if score == 0 {
		return Empty
	}

	if score == math.Trunc(score) {
		return strconv.FormatFloat(score, 'f', 0, 64)
	}

	return strings.Replace(strconv.FormatFloat(score, 'f', -1, 64), ".", ",", 1)
}

// Sum adds up the parsed value of every cell.
func Sum(cells ...string) float64 {
	var total float64
	for _, cell := range cells {
		total += ParseScore(cell)
	}
	return total
}
