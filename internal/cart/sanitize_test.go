package cart

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeCoercesLooseRecords(t *testing.T) {
	lines := Sanitize([]Record{{
		"id":       "3",
		"price":    "2600",
		"quantity": "2",
		"size":     "M",
		"name":     "X",
		"image":    "y",
	}})

	require.Equal(t, []Line{{ID: "3", Name: "X", Price: 2600, Image: "y", Size: "M", Quantity: 2}}, lines)
}

func TestSanitizeDefaults(t *testing.T) {
	lines := Sanitize([]Record{{"id": float64(9)}})

	require.Len(t, lines, 1)
	require.Equal(t, Line{ID: "9", Name: DefaultName, Price: 0, Image: "", Size: DefaultSize, Quantity: 1}, lines[0])
}

func TestSanitizeFallsBackToSlug(t *testing.T) {
	lines := Sanitize([]Record{{"slug": "geo-bandana", "price": 1500}})

	require.Len(t, lines, 1)
	require.Equal(t, "geo-bandana", lines[0].ID)
}

func TestSanitizeDropsMalformed(t *testing.T) {
	lines := Sanitize([]Record{
		{"id": "neg-price", "price": -5},
		{"id": "neg-qty", "price": 10, "quantity": -2},
		{"id": "zero-qty", "price": 10, "quantity": "0"},
		{"price": 10},
		nil,
		{"id": "ok", "price": "abc", "quantity": "many"},
	})

	require.Len(t, lines, 1)
	require.Equal(t, "ok", lines[0].ID)
	require.Equal(t, 0.0, lines[0].Price)
	require.Equal(t, 1, lines[0].Quantity)
}

func TestSanitizeDropsPersistedZeroQuantity(t *testing.T) {
	for _, qty := range []any{0, "0", 0.4, json.Number("0")} {
		lines := Sanitize([]Record{{"id": "3", "price": "2600", "quantity": qty, "size": "M"}})
		require.Empty(t, lines, "quantity %#v", qty)
	}
}

func TestSanitizeMergesDuplicatePairs(t *testing.T) {
	lines := Sanitize([]Record{
		{"id": "1", "size": "M", "quantity": 2, "price": 100},
		{"id": "1", "size": "L", "quantity": 1, "price": 100},
		{"id": "1", "size": "M", "quantity": 3, "price": 100},
	})

	require.Len(t, lines, 2)
	require.Equal(t, Key{ID: "1", Size: "M"}, lines[0].Key())
	require.Equal(t, 5, lines[0].Quantity)
	require.Equal(t, 1, lines[1].Quantity)
}

func TestCoercePrice(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{in: 2500, want: 2500},
		{in: "2500", want: 2500},
		{in: " 19.99 ", want: 19.99},
		{in: "12abc", want: 12},
		{in: ".5", want: 0.5},
		{in: "-3", want: -3},
		{in: json.Number("42.5"), want: 42.5},
		{in: "abc", want: 0},
		{in: nil, want: 0},
		{in: true, want: 0},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: 0},
	}
	for _, tc := range cases {
		if got := CoercePrice(tc.in); got != tc.want {
			t.Fatalf("CoercePrice(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCoerceQuantity(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{in: 3, want: 3},
		{in: float64(2.9), want: 2},
		{in: "4", want: 4},
		{in: "7 shirts", want: 7},
		{in: "-1", want: -1},
		{in: "0", want: 0},
		{in: json.Number("5"), want: 5},
		{in: "", want: 1},
		{in: "x", want: 1},
		{in: nil, want: 1},
		{in: math.NaN(), want: 1},
		{in: float64(1 << 40), want: 1},
		{in: int64(1 << 40), want: 1},
		{in: json.Number("1099511627776"), want: 1},
		{in: "1099511627776", want: 1},
		{in: "-1099511627776", want: 1},
		{in: "99999999999999999999", want: 1},
		{in: int64(math.MaxInt32), want: math.MaxInt32},
	}
	for _, tc := range cases {
		if got := CoerceQuantity(tc.in); got != tc.want {
			t.Fatalf("CoerceQuantity(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeOutputAlwaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := []any{nil, "", "abc", "-1", "0", "1", "2.5", -3, 0, 4, 1500.0, -0.5, true, json.Number("8")}
	pick := func() any { return values[rng.Intn(len(values))] }

	for i := 0; i < 500; i++ {
		records := make([]Record, rng.Intn(6))
		for j := range records {
			records[j] = Record{
				"id":       pick(),
				"name":     pick(),
				"price":    pick(),
				"image":    pick(),
				"size":     pick(),
				"quantity": pick(),
			}
		}
		lines := Sanitize(records)
		seen := map[Key]bool{}
		for _, line := range lines {
			if line.Price < 0 || line.Quantity < 1 {
				t.Fatalf("invalid line survived sanitization: %+v", line)
			}
			if seen[line.Key()] {
				t.Fatalf("duplicate key %+v", line.Key())
			}
			seen[line.Key()] = true
		}
		require.Equal(t, lines, Sanitize(Records(lines)), "sanitize must be idempotent")
	}
}

func TestSerializedStateRoundTrips(t *testing.T) {
	state := []Line{
		{ID: "7", Name: "Geo Bandana", Price: 1500, Image: "x", Size: "One Size", Quantity: 2},
		{ID: "1", Name: "Neon Geometry", Price: 2500.5, Image: "/assets/product-1.jpg", Size: "M", Quantity: 1},
	}

	raw, err := json.Marshal(state)
	require.NoError(t, err)

	var records []Record
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Equal(t, state, Sanitize(records))
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals([]Line{
		{ID: "1", Price: 1500, Quantity: 2},
		{ID: "2", Price: 2500, Quantity: 1},
	})
	require.Equal(t, Totals{Items: 3, Price: 5500}, totals)
	require.Equal(t, Totals{}, ComputeTotals(nil))
}
