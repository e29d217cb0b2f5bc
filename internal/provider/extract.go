package provider

import (
	"encoding/json"
	"strconv"
)

// ExtractValue normalizes a numeric value from Sleeper's loosely typed JSON.
//
// Sleeper mixes plain numbers, numeric strings, and nulls across endpoints
// (points, custom_points, roster settings). This handles all of them.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ExtractInt is ExtractValue truncated to an int.
func ExtractInt(val interface{}) (int, bool) {
	f, ok := ExtractValue(val)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// SplitDecimal joins Sleeper's integer/hundredths pairs such as
// fpts + fpts_decimal into one value.
func SplitDecimal(whole, decimal interface{}) float64 {
	w, _ := ExtractValue(whole)
	d, _ := ExtractValue(decimal)
	return w + d/100
}
