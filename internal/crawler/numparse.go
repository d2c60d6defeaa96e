package crawler

import (
	"strconv"
	"strings"
)

// parseCount converts a human-formatted counter like "1,234" or "2.3k" into
// an integer. Unparseable input yields 0 so a single odd counter never sinks
// a whole record. Fractional results are truncated, not rounded.
func parseCount(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	text = strings.ReplaceAll(text, ",", "")
	text = strings.ToLower(text)

	// Number of decimal places the unit suffix shifts by.
	shift := 0
	switch {
	case strings.HasSuffix(text, "k"):
		shift = 3
		text = strings.TrimSuffix(text, "k")
	case strings.HasSuffix(text, "m"):
		shift = 6
		text = strings.TrimSuffix(text, "m")
	}

	whole, frac, _ := strings.Cut(text, ".")
	if whole == "" && frac == "" {
		return 0
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0
		}
	}

	// Shift the decimal point in string form so "2.3" + k becomes "2300"
	// exactly; float multiplication would land a hair under and truncate
	// to 2299. Fraction digits beyond the shift are dropped.
	if len(frac) < shift {
		frac += strings.Repeat("0", shift-len(frac))
	}
	digits := whole + frac[:shift]
	if digits == "" {
		digits = "0"
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}
