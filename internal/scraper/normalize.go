package scraper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`\d[\d,]*\.?\d*`)

// NormalizeAmount turns a raw price text ("₹1,299.00", "MRP: 1,999") into
// a canonical numeric string. It finds the first numeric run, strips
// thousands separators, and renders integers without a fractional part.
// Anything unparseable yields "0"; the function never fails.
func NormalizeAmount(raw string) string {
	if raw == "" {
		return "0"
	}

	match := amountPattern.FindString(raw)
	if match == "" {
		return "0"
	}

	val, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return "0"
	}

	if val == math.Trunc(val) {
		// Out of int64 range counts as a parse failure, like every
		// other failure here
		if val < math.MinInt64 || val >= math.MaxInt64 {
			return "0"
		}
		return strconv.FormatInt(int64(val), 10)
	}

	// FormatFloat with -1 precision already drops trailing zeros.
	return strconv.FormatFloat(val, 'f', -1, 64)
}
