package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ringgitPrinter = message.NewPrinter(language.MustParse("en-MY"))

// FormatRinggit renders an amount in Malaysian Ringgit, e.g. RM1,500 or
// RM88.50. Whole amounts drop the decimals. NaN and ±Inf render as "RM-".
func FormatRinggit(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "RM-"
	}
	rounded := math.Round(amount*100) / 100
	sign := ""
	switch {
	case rounded == 0:
		rounded = 0
	case rounded < 0:
		sign = "-"
		rounded = -rounded
	}
	if rounded == math.Trunc(rounded) {
		return sign + ringgitPrinter.Sprintf("RM%.0f", rounded)
	}
	return sign + ringgitPrinter.Sprintf("RM%.2f", rounded)
}
