package cart

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/roach88/nerocart/internal/kv"
)

// quietLogger discards store logs in tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestStore initializes a store over the given backend.
func createTestStore(t *testing.T, b kv.Backend, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return Initialize(context.Background(), b, opts...)
}

var (
	phoneCase = Product{ID: "case-01", Name: "Phone Case", Price: 1500, Image: "img/case.png"}
	charger   = Product{ID: "chg-02", Name: "USB-C Charger", Price: 750, Image: "img/charger.png"}
	earbuds   = Product{ID: "ear-03", Name: "Wireless Earbuds", Price: 12000, Image: ""}
)
