package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrencyUZS memformat jumlah ke format so'm, contoh: 65000 -> "65 000 so'm"
func FormatCurrencyUZS(amount float64) string {
	rounded := int64(math.Round(amount))
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := fmt.Sprintf("%d", rounded)
	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	out := strings.Join(groups, " ") + " so'm"
	if negative {
		return "-" + out
	}
	return out
}
