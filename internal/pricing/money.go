package pricing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseMoney extracts a numeric amount from a partner-supplied price value.
// Partner APIs are inconsistent: prices arrive as raw numbers, numeric
// strings, or display strings like "USD 1,850.50". String input is reduced
// to digits and the decimal point before parsing, so currency codes and
// thousands separators are discarded. The result is rounded to cents.
//
// Reports ok=false for absent, empty, or unparseable values.
func ParseMoney(v any) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		return roundCents(val), true
	case float32:
		return roundCents(float64(val)), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return roundCents(f), true
	case string:
		var b strings.Builder
		for _, r := range val {
			if (r >= '0' && r <= '9') || r == '.' {
				b.WriteRune(r)
			}
		}
		f, err := strconv.ParseFloat(b.String(), 64)
		if err != nil {
			return 0, false
		}
		return roundCents(f), true
	default:
		return 0, false
	}
}

func roundCents(f float64) float64 {
	return math.Round(f*100) / 100
}
