package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/nerocart/internal/cart"
	"github.com/roach88/nerocart/internal/catalog"
	"github.com/roach88/nerocart/internal/kv"
)

// DefaultShop is the message recipient when a scenario names none.
const DefaultShop = "Nero's Phone Accessories"

// errWriteRejected is what the backend returns between fail_writes and
// restore_writes steps.
var errWriteRejected = errors.New("write rejected")

// Harness executes one scenario against a fresh in-memory backend.
type Harness struct {
	backend *kv.Memory
	store   *cart.Store
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Failed expectations and assertions are reported in the result. An error
// is returned only when the scenario cannot be executed at all.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	h := &Harness{
		backend: kv.NewMemory(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	if scenario.Catalog != "" {
		c, err := catalog.Load(scenario.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		h.catalog = c
	}

	if scenario.Initial != nil {
		h.backend.Put(cart.DefaultKey, *scenario.Initial)
	}
	h.reload(ctx)

	result := NewResult()
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i, step, result)
	}

	shop := scenario.Shop
	if shop == "" {
		shop = DefaultShop
	}
	if msg, err := h.store.FormatOrderMessage(shop); err == nil {
		result.Message = msg
	}

	actx := &AssertionContext{
		Store:   h.store,
		Backend: h.backend,
		Shop:    shop,
		Ctx:     ctx,
	}
	for _, errMsg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

func (h *Harness) reload(ctx context.Context) {
	h.store = cart.Initialize(ctx, h.backend, cart.WithLogger(h.logger))
}

// executeStep runs one step, checks its expectation and appends a trace event.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) {
	var (
		ch  cart.Change
		err error
	)
	panel := ""

	switch step.Op {
	case OpAdd:
		ch, err = h.store.Add(ctx, h.product(step), step.Qty)
		panel = ch.Panel.String()
	case OpChange:
		ch, err = h.store.ChangeQuantity(ctx, step.ID, step.Delta)
		panel = ch.Panel.String()
	case OpRemove:
		ch, err = h.store.Remove(ctx, step.ID)
		panel = ch.Panel.String()
	case OpClear:
		ch, err = h.store.Clear(ctx)
		panel = ch.Panel.String()
	case OpReload:
		h.reload(ctx)
	case OpFailWrites:
		h.backend.FailWrites(errWriteRejected)
	case OpRestoreWrites:
		h.backend.FailWrites(nil)
	}

	code := errorCode(err)
	result.Trace = append(result.Trace, TraceEvent{
		Seq:   i + 1,
		Op:    step.Op,
		ID:    step.ID,
		Panel: panel,
		Error: code,
		Cart:  cartLines(h.store.Items()),
		Total: h.store.Total(),
	})

	h.logger.Debug("step executed", "step", i, "op", step.Op, "id", step.ID, "error", code)

	if step.Expect == nil {
		if err != nil {
			result.AddError(fmt.Sprintf("step %d (%s %s): unexpected error: %v", i, step.Op, step.ID, err))
		}
		return
	}
	if step.Expect.Error != code {
		result.AddError(fmt.Sprintf("step %d (%s %s): expected error %q, got %q", i, step.Op, step.ID, step.Expect.Error, code))
	}
	if step.Expect.Panel != "" && step.Expect.Panel != panel {
		result.AddError(fmt.Sprintf("step %d (%s %s): expected panel %q, got %q", i, step.Op, step.ID, step.Expect.Panel, panel))
	}
}

// product builds the add candidate, filling unset fields from the catalog.
func (h *Harness) product(step Step) cart.Product {
	p := cart.Product{ID: step.ID, Name: step.Name, Image: step.Image}
	if step.Price != nil {
		p.Price = *step.Price
	}
	if known, ok := h.catalog.Lookup(step.ID); ok {
		if p.Name == "" {
			p.Name = known.Name
		}
		if step.Price == nil {
			p.Price = known.Price
		}
		if p.Image == "" {
			p.Image = known.Image
		}
	}
	return p
}

// errorCode returns the cart error code of err, or "" for nil.
// Errors outside the cart taxonomy are reported verbatim.
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	var cerr *cart.Error
	if errors.As(err, &cerr) {
		return string(cerr.Code)
	}
	return err.Error()
}

func cartLines(items []cart.LineItem) []string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s x%d @%d", it.ID, it.Qty, it.Price))
	}
	return lines
}
