package cart

import "github.com/roach88/nerocart/internal/codec"

// Product describes an item offered for sale. It is the input to Add.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}

// LineItem is one product entry in the cart.
type LineItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
	Qty   int    `json:"qty"`
}

// Subtotal returns Price * Qty.
func (li LineItem) Subtotal() int64 {
	return li.Price * int64(li.Qty)
}

// PanelSignal tells the UI what to do with an on-screen cart panel
// after a mutation.
type PanelSignal int

const (
	// PanelKeep leaves the panel as it is.
	PanelKeep PanelSignal = iota
	// PanelOpen asks the UI to show the cart.
	PanelOpen
	// PanelClose asks the UI to dismiss the cart.
	PanelClose
)

func (p PanelSignal) String() string {
	switch p {
	case PanelOpen:
		return "open"
	case PanelClose:
		return "close"
	default:
		return "keep"
	}
}

// Change is the result of a mutation: the cart after the change and the
// panel signal for the UI.
type Change struct {
	Items []LineItem
	Panel PanelSignal
}

func toRecords(items []LineItem) []codec.Record {
	records := make([]codec.Record, len(items))
	for i, it := range items {
		records[i] = codec.Record{ID: it.ID, Name: it.Name, Price: it.Price, Image: it.Image, Qty: it.Qty}
	}
	return records
}

func fromRecords(records []codec.Record) []LineItem {
	items := make([]LineItem, len(records))
	for i, r := range records {
		items[i] = LineItem{ID: r.ID, Name: r.Name, Price: r.Price, Image: r.Image, Qty: r.Qty}
	}
	return items
}
