package chart

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// maxExactInt is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactInt = 1 << 53

// FormatValue rounds v to an integer and groups thousands with commas,
// e.g. 1234567 -> "1,234,567".
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	r := math.Round(v)
	if math.Abs(r) < maxExactInt {
		return printer.Sprintf("%d", int64(r))
	}
	return printer.Sprintf("%.0f", r)
}
