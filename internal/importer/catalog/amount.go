package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parsePrice reads a price in the given notation and rounds it to cents.
// Currency symbols and spaces are ignored: "€ 1.234,56" -> 1234.56.
func parsePrice(s string, mark decimalMark) (float64, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '€', '$', '£', ' ', ' ':
			return -1
		}

		return r
	}, s)

	switch mark {
	case decimalComma:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case decimalPoint:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(2).InexactFloat64(), nil
}
