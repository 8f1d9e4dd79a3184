package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/nerocart/internal/cart"
)

// Options configures a Flow.
type Options struct {
	// Shop is the recipient label used in greetings.
	Shop string

	// Phone is the messaging recipient for deep links.
	Phone string

	// IncludeReference appends "Ref: <id>" to cart orders.
	IncludeReference bool

	// Refs generates order references. Defaults to UUIDv7Generator.
	Refs RefGenerator

	// Opener receives the deep link. Required.
	Opener Opener

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Order is a composed order handed to the messaging service.
type Order struct {
	Ref  string `json:"ref"`
	Text string `json:"text"`
	Link string `json:"link"`
}

// Flow composes order messages from a cart.Store and opens them.
type Flow struct {
	store *cart.Store
	opts  Options
	log   *slog.Logger
}

// NewFlow creates a Flow over store.
func NewFlow(store *cart.Store, opts Options) *Flow {
	if opts.Refs == nil {
		opts.Refs = UUIDv7Generator{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Flow{store: store, opts: opts, log: log}
}

// OrderCart composes the whole-cart order and opens its link.
//
// An empty cart returns cart.ErrEmptyCart with no message composed and
// nothing opened.
func (f *Flow) OrderCart(ctx context.Context) (Order, error) {
	if f.store.IsEmpty() {
		f.log.Info("order rejected", "reason", "empty cart")
		return Order{}, cart.ErrEmptyCart
	}

	text, err := f.store.FormatOrderMessage(f.opts.Shop)
	if err != nil {
		return Order{}, err
	}

	ref := f.opts.Refs.Generate()
	if f.opts.IncludeReference {
		text += "\nRef: " + ref
	}

	f.log.Info("cart order composed",
		"ref", ref,
		"items", f.store.ItemCount(),
		"total", f.store.Total(),
	)
	return f.open(ctx, ref, text)
}

// OrderNow composes a single-item order for p and opens its link.
// The cart is not read or changed.
func (f *Flow) OrderNow(ctx context.Context, p cart.Product, qty int) (Order, error) {
	text := f.store.FormatSingleItemMessage(p.Name, p.Price, qty, f.opts.Shop)
	ref := f.opts.Refs.Generate()

	f.log.Info("single order composed", "ref", ref, "product", p.ID)
	return f.open(ctx, ref, text)
}

// Contact composes a contact-form message and opens its link.
func (f *Flow) Contact(ctx context.Context, name, email, message string) (Order, error) {
	text := FormatContactMessage(f.opts.Shop, name, email, message)
	ref := f.opts.Refs.Generate()

	f.log.Info("contact message composed", "ref", ref)
	return f.open(ctx, ref, text)
}

func (f *Flow) open(ctx context.Context, ref, text string) (Order, error) {
	o := Order{Ref: ref, Text: text, Link: Link(f.opts.Phone, text)}
	if f.opts.Opener == nil {
		return o, fmt.Errorf("open order %s: no opener configured", ref)
	}
	if err := f.opts.Opener.Open(ctx, o.Link); err != nil {
		return o, fmt.Errorf("open order %s: %w", ref, err)
	}
	return o, nil
}

// FormatContactMessage builds the contact-form text.
func FormatContactMessage(shop, name, email, message string) string {
	return strings.Join([]string{
		fmt.Sprintf("Hello %s 👋", shop),
		"",
		"Name: " + name,
		"Email: " + email,
		"Message: " + message,
	}, "\n")
}
