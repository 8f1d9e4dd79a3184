package cart

import (
	"context"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nerocart/internal/kv"
	"github.com/roach88/nerocart/internal/money"
)

const shop = "Nero's Phone Accessories"

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestFormatOrderMessage_Golden(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, kv.NewMemory())
	_, err := s.Add(ctx, phoneCase, 2)
	require.NoError(t, err)
	_, err = s.Add(ctx, charger, 1)
	require.NoError(t, err)

	msg, err := s.FormatOrderMessage(shop)
	require.NoError(t, err)

	// To regenerate: go test ./internal/cart -run TestFormatOrderMessage_Golden -update
	newGolden(t).Assert(t, "order_message", []byte(msg+"\n"))
}

func TestFormatOrderMessage_EmptyCart(t *testing.T) {
	s := createTestStore(t, kv.NewMemory())

	msg, err := s.FormatOrderMessage(shop)
	assert.Empty(t, msg)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.True(t, IsEmptyCartError(err))
	assert.Equal(t, "Your cart is empty.", ErrEmptyCart.Message)
}

func TestFormatOrderMessage_LineCount(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, kv.NewMemory(), WithTrailingFields(nil))
	for _, p := range []Product{phoneCase, charger, earbuds} {
		_, err := s.Add(ctx, p, 2)
		require.NoError(t, err)
	}

	msg, err := s.FormatOrderMessage(shop)
	require.NoError(t, err)

	lines := strings.Split(msg, "\n")
	assert.Len(t, lines, 3+2, "greeting + one line per distinct item + total")
	assert.Equal(t, "Total: ₦28,500", lines[len(lines)-1])
}

func TestFormatOrderMessage_DefaultTrailingFields(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, kv.NewMemory())
	_, err := s.Add(ctx, phoneCase, 1)
	require.NoError(t, err)

	msg, err := s.FormatOrderMessage(shop)
	require.NoError(t, err)

	lines := strings.Split(msg, "\n")
	assert.Len(t, lines, 1+2+len(DefaultTrailingFields))
	assert.Equal(t, "Address / Delivery info: ", lines[len(lines)-1])
}

func TestFormatOrderMessage_Deterministic(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, kv.NewMemory())
	_, err := s.Add(ctx, earbuds, 1)
	require.NoError(t, err)

	a, err := s.FormatOrderMessage(shop)
	require.NoError(t, err)
	b, err := s.FormatOrderMessage(shop)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFormatOrderMessage_CustomCurrency(t *testing.T) {
	ctx := context.Background()
	f, err := money.NewFormatter("€", "de")
	require.NoError(t, err)
	s := createTestStore(t, kv.NewMemory(), WithFormatter(f), WithTrailingFields(nil))
	_, err = s.Add(ctx, earbuds, 1)
	require.NoError(t, err)

	msg, err := s.FormatOrderMessage("Laden")
	require.NoError(t, err)
	assert.Equal(t, "Hello Laden! I want to order these items:\n1 x Wireless Earbuds — €12.000 each\nTotal: €12.000", msg)
}

func TestFormatSingleItemMessage_Golden(t *testing.T) {
	s := createTestStore(t, kv.NewMemory())

	msg := s.FormatSingleItemMessage("Wireless Earbuds", 12000, 2, shop)
	newGolden(t).Assert(t, "single_item_message", []byte(msg+"\n"))
}

func TestFormatSingleItemMessage_IndependentOfCart(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, kv.NewMemory())

	before := s.FormatSingleItemMessage("Charger", 750, 0, shop)
	_, err := s.Add(ctx, phoneCase, 5)
	require.NoError(t, err)
	after := s.FormatSingleItemMessage("Charger", 750, 0, shop)

	assert.Equal(t, before, after)
	assert.Equal(t, "Hello Nero's Phone Accessories! I want to order 1 x Charger — ₦750 each.", after)
	assert.Equal(t, 5, s.ItemCount())
}
