package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/nerocart/internal/cart"
	"github.com/roach88/nerocart/internal/codec"
	"github.com/roach88/nerocart/internal/kv"
)

// AssertionContext provides what assertions inspect.
type AssertionContext struct {
	Store   *cart.Store
	Backend kv.Backend
	Shop    string
	Ctx     context.Context
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assertion failed: %s\n  Expected: %s\n  Actual: %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	errs := []string{}
	for i, a := range assertions {
		if err := evaluateAssertion(a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertItems:
		return assertItems(actx.Store.Items(), a.Items)
	case AssertTotal:
		return assertNumber(a.Type, actx.Store.Total(), *a.Value)
	case AssertItemCount:
		return assertNumber(a.Type, int64(actx.Store.ItemCount()), *a.Value)
	case AssertEmpty:
		if actx.Store.IsEmpty() != *a.Empty {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%t", *a.Empty),
				Actual:   fmt.Sprintf("%t", actx.Store.IsEmpty()),
			}
		}
		return nil
	case AssertMessage:
		return assertMessage(actx.Store, actx.Shop, a.Lines)
	case AssertPersisted:
		return assertPersisted(actx)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertItems(items []cart.LineItem, want []ItemExpect) error {
	if len(items) != len(want) {
		return &AssertionError{
			Type:     AssertItems,
			Expected: fmt.Sprintf("%d items %v", len(want), want),
			Actual:   fmt.Sprintf("%d items %v", len(items), cartLines(items)),
		}
	}

	for i, w := range want {
		got := items[i]
		mismatch := got.ID != w.ID || got.Qty != w.Qty ||
			(w.Name != "" && got.Name != w.Name) ||
			(w.Price != nil && got.Price != *w.Price)
		if mismatch {
			return &AssertionError{
				Type:     AssertItems,
				Expected: fmt.Sprintf("item %d = %v", i, w),
				Actual:   fmt.Sprintf("item %d = %+v", i, got),
			}
		}
	}
	return nil
}

func assertNumber(kind string, got, want int64) error {
	if got != want {
		return &AssertionError{
			Type:     kind,
			Expected: fmt.Sprintf("%d", want),
			Actual:   fmt.Sprintf("%d", got),
		}
	}
	return nil
}

func assertMessage(store *cart.Store, shop string, lines []string) error {
	msg, err := store.FormatOrderMessage(shop)
	if len(lines) == 0 {
		if !cart.IsEmptyCartError(err) {
			return &AssertionError{Type: AssertMessage, Expected: "empty cart error", Actual: fmt.Sprintf("%q, %v", msg, err)}
		}
		return nil
	}
	if err != nil {
		return &AssertionError{Type: AssertMessage, Expected: strings.Join(lines, "\\n"), Actual: err.Error()}
	}

	want := strings.Join(lines, "\n")
	if msg != want {
		return &AssertionError{Type: AssertMessage, Expected: fmt.Sprintf("%q", want), Actual: fmt.Sprintf("%q", msg)}
	}
	return nil
}

// assertPersisted checks that a reload would see exactly the in-memory cart.
func assertPersisted(actx *AssertionContext) error {
	data, ok, err := actx.Backend.Get(actx.Ctx, actx.Store.Key())
	if err != nil {
		return fmt.Errorf("read backend: %w", err)
	}

	var stored []cart.LineItem
	if ok {
		records, err := codec.Decode(data)
		if err != nil {
			return &AssertionError{Type: AssertPersisted, Expected: "decodable payload", Actual: err.Error()}
		}
		for _, r := range records {
			stored = append(stored, cart.LineItem{ID: r.ID, Name: r.Name, Price: r.Price, Image: r.Image, Qty: r.Qty})
		}
	}

	got := cartLines(stored)
	want := cartLines(actx.Store.Items())
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return &AssertionError{
			Type:     AssertPersisted,
			Expected: fmt.Sprintf("%v", want),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}
