package cart

const (
	DefaultName = "Unknown Item"
	DefaultSize = "S"
)

// Line is one product+size entry in the cart. Lines are only ever built by
// the sanitizer, so Price >= 0 and Quantity >= 1 always hold.
type Line struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

// Key identifies a line; no two lines in a cart share one.
type Key struct {
	ID   string
	Size string
}

func (l Line) Key() Key {
	return Key{ID: l.ID, Size: l.Size}
}

// Subtotal is price times quantity for the line.
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Record is the loosely typed wire/persisted shape of a line:
// {id, name, price, image, size, quantity} with an optional slug. Any field
// may be missing or carry an unexpected type.
type Record map[string]any

// Records converts lines back into their wire shape.
func Records(lines []Line) []Record {
	out := make([]Record, 0, len(lines))
	for _, line := range lines {
		out = append(out, Record{
			"id":       line.ID,
			"name":     line.Name,
			"price":    line.Price,
			"image":    line.Image,
			"size":     line.Size,
			"quantity": line.Quantity,
		})
	}
	return out
}

// Totals are derived from the current lines on every read.
type Totals struct {
	Items int     `json:"total_items"`
	Price float64 `json:"total_price"`
}

func ComputeTotals(lines []Line) Totals {
	var totals Totals
	for _, line := range lines {
		totals.Items += line.Quantity
		totals.Price += line.Subtotal()
	}
	return totals
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
