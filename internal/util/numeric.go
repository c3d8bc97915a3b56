package util

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ToNumber coerces a loosely typed value from external JSON into a float.
// Numbers pass through, strings are read up to the first non-numeric
// character ("12.5%" is 12.5) and everything else is 0. Non-finite results
// are 0 as well. It never fails.
func ToNumber(v interface{}) float64 {
	var out float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		out = n
	case float32:
		out = float64(n)
	case int:
		out = float64(n)
	case int8:
		out = float64(n)
	case int16:
		out = float64(n)
	case int32:
		out = float64(n)
	case int64:
		out = float64(n)
	case uint:
		out = float64(n)
	case uint8:
		out = float64(n)
	case uint16:
		out = float64(n)
	case uint32:
		out = float64(n)
	case uint64:
		out = float64(n)
	case json.Number:
		return ToNumber(string(n))
	case string:
		out = parseLeadingFloat(n)
	default:
		return 0
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0
	}
	return out
}

// parseLeadingFloat only reads plain decimal notation; strconv's extras
// (inf, nan, hex, underscores) are not numbers here.
func parseLeadingFloat(s string) float64 {
	match := leadingNumber.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return f
}
