package cart

import (
	"fmt"
	"strings"
)

// DefaultTrailingFields are appended after the total line of a cart order
// so the customer can fill in delivery details.
var DefaultTrailingFields = []string{"", "Name: ", "Address / Delivery info: "}

// FormatOrderMessage builds the order text for the whole cart:
//
//	Hello <recipient>! I want to order these items:
//	<qty> x <name> — <currency><price> each
//	...
//	Total: <currency><total>
//	<trailing fields>
//
// Returns ErrEmptyCart, and no text, when the cart is empty.
func (s *Store) FormatOrderMessage(recipient string) (string, error) {
	if s.IsEmpty() {
		return "", ErrEmptyCart
	}

	lines := make([]string, 0, len(s.items)+2+len(s.trailing))
	lines = append(lines, fmt.Sprintf("Hello %s! I want to order these items:", recipient))
	for _, it := range s.items {
		lines = append(lines, fmt.Sprintf("%d x %s — %s each", it.Qty, it.Name, s.money.Amount(it.Price)))
	}
	lines = append(lines, "Total: "+s.money.Amount(s.Total()))
	lines = append(lines, s.trailing...)

	return strings.Join(lines, "\n"), nil
}

// FormatSingleItemMessage builds the order text for one ad-hoc item,
// independent of the cart contents. A qty below 1 is shown as 1.
func (s *Store) FormatSingleItemMessage(name string, price int64, qty int, recipient string) string {
	if qty < 1 {
		qty = 1
	}
	return fmt.Sprintf("Hello %s! I want to order %d x %s — %s each.", recipient, qty, name, s.money.Amount(price))
}
