package cart

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roach88/nerocart/internal/codec"
	"github.com/roach88/nerocart/internal/kv"
	"github.com/roach88/nerocart/internal/money"
)

// DefaultKey is the storage key the cart is persisted under.
const DefaultKey = "nero_cart_v1"

// Store is the cart state owner. See the package documentation.
type Store struct {
	backend  kv.Backend
	key      string
	log      *slog.Logger
	money    money.Formatter
	trailing []string

	items []LineItem
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFormatter sets the price formatter used in order messages.
func WithFormatter(f money.Formatter) Option {
	return func(s *Store) {
		s.money = f
	}
}

// WithTrailingFields replaces the lines appended after the total in
// FormatOrderMessage. Pass an empty slice to append nothing.
func WithTrailingFields(fields []string) Option {
	return func(s *Store) {
		s.trailing = append([]string(nil), fields...)
	}
}

// Initialize loads the cart from backend and returns the Store.
//
// An absent key, a backend read error or a malformed payload all load an
// empty cart. Initialize never fails.
func Initialize(ctx context.Context, backend kv.Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		key:      DefaultKey,
		log:      slog.Default(),
		money:    money.Default(),
		trailing: append([]string(nil), DefaultTrailingFields...),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.items = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []LineItem {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("cart read failed, starting empty", "key", s.key, "error", err)
		return nil
	}
	if !ok {
		s.log.Debug("no saved cart", "key", s.key)
		return nil
	}

	records, err := codec.Decode(data)
	if err != nil {
		s.log.Warn("saved cart is malformed, starting empty", "key", s.key, "error", err)
		return nil
	}

	s.log.Debug("cart loaded", "key", s.key, "items", len(records))
	return fromRecords(records)
}

// Add puts qty units of p in the cart. If p.ID is already present its
// quantity grows by qty and p's other fields are ignored. A qty below 1
// adds one unit. Strings are stored in NFC, so ids that differ only in
// Unicode composition name the same item.
//
// Returns an ErrCodeInvalidItem error, without changing the cart, when
// p.ID is empty, p.Price is negative or the quantity would exceed
// codec.MaxQty.
func (s *Store) Add(ctx context.Context, p Product, qty int) (Change, error) {
	if p.ID == "" {
		return s.change(PanelKeep), newInvalidItemError("product id is required")
	}
	if p.Price < 0 {
		return s.change(PanelKeep), newInvalidItemError("product price must not be negative")
	}
	if qty < 1 {
		qty = 1
	}

	p = Product{
		ID:    codec.Normalize(p.ID),
		Name:  codec.Normalize(p.Name),
		Price: p.Price,
		Image: codec.Normalize(p.Image),
	}

	i := s.index(p.ID)
	have := 0
	if i >= 0 {
		have = s.items[i].Qty
	}
	if qty > codec.MaxQty-have {
		return s.change(PanelKeep), newQuantityLimitError(p.ID)
	}

	if i >= 0 {
		s.items[i].Qty += qty
	} else {
		s.items = append(s.items, LineItem{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Image: p.Image,
			Qty:   qty,
		})
	}

	return s.commit(ctx, PanelOpen)
}

// ChangeQuantity adds delta to the quantity of item id. If the result is
// below 1 the item is removed. An unknown id is a no-op and writes nothing.
// A result above codec.MaxQty is rejected with ErrCodeInvalidItem and the
// cart is left unchanged.
func (s *Store) ChangeQuantity(ctx context.Context, id string, delta int) (Change, error) {
	i := s.index(id)
	if i < 0 {
		return s.change(PanelKeep), nil
	}
	if delta > codec.MaxQty-s.items[i].Qty {
		return s.change(PanelKeep), newQuantityLimitError(s.items[i].ID)
	}

	s.items[i].Qty += delta
	if s.items[i].Qty < 1 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}

	return s.commit(ctx, PanelKeep)
}

// Remove drops item id from the cart if present. The cart is written
// either way.
func (s *Store) Remove(ctx context.Context, id string) (Change, error) {
	if i := s.index(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	return s.commit(ctx, PanelKeep)
}

// Clear empties the cart and asks the UI to close the panel.
func (s *Store) Clear(ctx context.Context) (Change, error) {
	s.items = nil
	return s.commit(ctx, PanelClose)
}

// commit persists the current items and builds the Change.
func (s *Store) commit(ctx context.Context, panel PanelSignal) (Change, error) {
	ch := s.change(panel)

	data, err := codec.Encode(toRecords(s.items))
	if err != nil {
		s.log.Error("cart encode failed", "key", s.key, "error", err)
		return ch, newPersistError(s.key, err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		attrs := []any{"key", s.key, "error", err, "bytes", len(data)}
		if errors.Is(err, kv.ErrQuotaExceeded) {
			attrs = append(attrs, "quota", true)
		}
		s.log.Error("cart save failed", attrs...)
		return ch, newPersistError(s.key, err)
	}

	s.log.Debug("cart saved", "key", s.key, "items", len(s.items), "panel", panel.String())
	return ch, nil
}

func (s *Store) change(panel PanelSignal) Change {
	return Change{Items: s.Items(), Panel: panel}
}

func (s *Store) index(id string) int {
	id = codec.Normalize(id)
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Items returns a copy of the cart in display order.
// Returns an empty slice (not nil) for an empty cart.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the line item for id.
func (s *Store) Item(id string) (LineItem, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

// Total returns the sum of Price * Qty over all items.
func (s *Store) Total() int64 {
	var sum int64
	for _, it := range s.items {
		sum += it.Subtotal()
	}
	return sum
}

// ItemCount returns the sum of quantities.
func (s *Store) ItemCount() int {
	n := 0
	for _, it := range s.items {
		n += it.Qty
	}
	return n
}

// IsEmpty reports whether the cart has no items.
func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// Formatter returns the price formatter.
func (s *Store) Formatter() money.Formatter {
	return s.money
}
