package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nerocart/internal/cart"
	"github.com/roach88/nerocart/internal/kv"
)

func newAssertionContext(t *testing.T) (*AssertionContext, *kv.Memory) {
	t.Helper()
	ctx := context.Background()
	backend := kv.NewMemory()
	store := cart.Initialize(ctx, backend)

	_, err := store.Add(ctx, cart.Product{ID: "a", Name: "Alpha", Price: 100}, 2)
	require.NoError(t, err)
	_, err = store.Add(ctx, cart.Product{ID: "b", Name: "Beta", Price: 50}, 1)
	require.NoError(t, err)

	return &AssertionContext{Store: store, Backend: backend, Shop: "Shop", Ctx: ctx}, backend
}

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestEvaluateAssertions_Pass(t *testing.T) {
	actx, _ := newAssertionContext(t)

	errs := EvaluateAssertions([]Assertion{
		{Type: AssertItems, Items: []ItemExpect{{ID: "a", Qty: 2, Name: "Alpha"}, {ID: "b", Qty: 1, Price: int64Ptr(50)}}},
		{Type: AssertTotal, Value: int64Ptr(250)},
		{Type: AssertItemCount, Value: int64Ptr(3)},
		{Type: AssertEmpty, Empty: boolPtr(false)},
		{Type: AssertPersisted},
		{Type: AssertMessage, Lines: []string{
			"Hello Shop! I want to order these items:",
			"2 x Alpha — ₦100 each",
			"1 x Beta — ₦50 each",
			"Total: ₦250",
			"",
			"Name: ",
			"Address / Delivery info: ",
		}},
	}, actx)
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	actx, _ := newAssertionContext(t)

	tests := []struct {
		name      string
		assertion Assertion
		want      string
	}{
		{"item order", Assertion{Type: AssertItems, Items: []ItemExpect{{ID: "b", Qty: 1}, {ID: "a", Qty: 2}}}, "Assertion failed: items"},
		{"zero price is checked", Assertion{Type: AssertItems, Items: []ItemExpect{{ID: "a", Qty: 2, Price: int64Ptr(0)}, {ID: "b", Qty: 1}}}, "item 0 = a x2 @0"},
		{"item count mismatch", Assertion{Type: AssertItems, Items: []ItemExpect{{ID: "a", Qty: 2}}}, "1 items"},
		{"total", Assertion{Type: AssertTotal, Value: int64Ptr(1)}, "Expected: 1"},
		{"item_count", Assertion{Type: AssertItemCount, Value: int64Ptr(9)}, "Actual: 3"},
		{"empty", Assertion{Type: AssertEmpty, Empty: boolPtr(true)}, "Assertion failed: empty"},
		{"message on non-empty cart", Assertion{Type: AssertMessage}, "empty cart error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions([]Assertion{tt.assertion}, actx)
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.want)
		})
	}
}

func TestAssertPersisted_DetectsDivergence(t *testing.T) {
	actx, backend := newAssertionContext(t)

	backend.FailWrites(assert.AnError)
	_, err := actx.Store.Remove(actx.Ctx, "a")
	require.True(t, cart.IsPersistError(err))

	errs := EvaluateAssertions([]Assertion{{Type: AssertPersisted}}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Assertion failed: persisted")
}

func TestAssertPersisted_MalformedPayload(t *testing.T) {
	actx, backend := newAssertionContext(t)
	backend.Put(cart.DefaultKey, "{not json")

	errs := EvaluateAssertions([]Assertion{{Type: AssertPersisted}}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "decodable payload")
}
