package cart

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingFloatRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingIntRe   = regexp.MustCompile(`^[+-]?\d+`)
)

// Sanitize turns untrusted records into valid lines. Records that end up with
// a negative price, a quantity below one, or no identifier are dropped.
// Records repeating an (id, size) pair are merged by summing quantities.
// Sanitize is pure and idempotent.
func Sanitize(records []Record) []Line {
	lines := make([]Line, 0, len(records))
	index := make(map[Key]int, len(records))
	for _, rec := range records {
		line, ok := SanitizeRecord(rec)
		if !ok {
			continue
		}
		if i, dup := index[line.Key()]; dup {
			lines[i].Quantity += line.Quantity
			continue
		}
		index[line.Key()] = len(lines)
		lines = append(lines, line)
	}
	return lines
}

// SanitizeRecord coerces a single record. The bool is false when the record
// is malformed and must not enter the cart.
func SanitizeRecord(rec Record) (Line, bool) {
	if rec == nil {
		return Line{}, false
	}
	id := stringify(rec["id"])
	if id == "" {
		id = stringify(rec["slug"])
	}
	if id == "" {
		return Line{}, false
	}

	line := Line{
		ID:       id,
		Name:     stringOr(rec["name"], DefaultName),
		Price:    CoercePrice(rec["price"]),
		Image:    stringify(rec["image"]),
		Size:     stringOr(rec["size"], DefaultSize),
		Quantity: CoerceQuantity(rec["quantity"]),
	}
	if line.Price < 0 || line.Quantity < 1 {
		return Line{}, false
	}
	return line, true
}

// CoercePrice reads a price from any representation. Strings are parsed by
// their leading numeric prefix; anything unparseable becomes 0.
func CoercePrice(v any) float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		match := leadingFloatRe.FindString(strings.TrimSpace(val))
		if match == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CoerceQuantity reads an integer quantity from any representation.
// Fractions truncate; unparseable, missing or out of range values (beyond
// ±MaxInt32) become 1 whatever the input type.
func CoerceQuantity(v any) int {
	switch val := v.(type) {
	case int:
		return bounded(int64(val))
	case int32:
		return int(val)
	case int64:
		return bounded(val)
	case float64:
		return truncate(val)
	case float32:
		return truncate(float64(val))
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return bounded(n)
		}
		if f, err := val.Float64(); err == nil {
			return truncate(f)
		}
		return 1
	case string:
		match := leadingIntRe.FindString(strings.TrimSpace(val))
		if match == "" {
			return 1
		}
		n, err := strconv.ParseInt(match, 10, 64)
		if err != nil {
			return 1
		}
		return bounded(n)
	default:
		return 1
	}
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 1
	}
	return int(f)
}

func bounded(n int64) int {
	if n > math.MaxInt32 || n < -math.MaxInt32 {
		return 1
	}
	return int(n)
}

func stringOr(v any, fallback string) string {
	if s := stringify(v); s != "" {
		return s
	}
	return fallback
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
