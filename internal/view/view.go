// Package view builds the cart view model the UI paints.
package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/roach88/nerocart/internal/cart"
	"github.com/roach88/nerocart/internal/money"
)

// EmptyText is shown in place of the item list for an empty cart.
const EmptyText = "Your cart is empty"

// Line is one rendered cart row.
type Line struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Qty      int    `json:"qty"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// Cart is the rendered cart: rows, counts and the summary line.
type Cart struct {
	Empty   bool   `json:"empty"`
	Lines   []Line `json:"lines"`
	Items   int    `json:"items"`
	Total   string `json:"total"`
	Summary string `json:"summary"`
	Panel   string `json:"panel,omitempty"`
}

// Build renders items with f.
func Build(items []cart.LineItem, f money.Formatter) Cart {
	v := Cart{
		Empty: len(items) == 0,
		Lines: make([]Line, 0, len(items)),
	}

	var total int64
	for _, it := range items {
		v.Lines = append(v.Lines, Line{
			ID:       it.ID,
			Name:     it.Name,
			Image:    it.Image,
			Qty:      it.Qty,
			Price:    f.Amount(it.Price),
			Subtotal: f.Amount(it.Subtotal()),
		})
		v.Items += it.Qty
		total += it.Subtotal()
	}
	v.Total = f.Amount(total)

	if !v.Empty {
		v.Summary = fmt.Sprintf("Items: %d • Total: %s", v.Items, v.Total)
	}
	return v
}

// FromChange renders a mutation result, carrying its panel signal.
func FromChange(ch cart.Change, f money.Formatter) Cart {
	v := Build(ch.Items, f)
	v.Panel = ch.Panel.String()
	return v
}

// Render writes the cart as an aligned text table.
func (v Cart) Render(w io.Writer) error {
	if v.Empty {
		_, err := fmt.Fprintln(w, EmptyText)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, l := range v.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s x %d\t%s\n", l.ID, l.Name, l.Price, l.Qty, l.Subtotal)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render cart: %w", err)
	}
	_, err := fmt.Fprintln(w, v.Summary)
	return err
}

// String implements fmt.Stringer using Render.
func (v Cart) String() string {
	var b strings.Builder
	_ = v.Render(&b)
	return b.String()
}
