// Package catalog loads the storefront product list from a CUE file.
//
// The file declares a top-level products list; it is unified with the
// embedded #Catalog schema, so a missing name, a negative or fractional
// price, or an unknown field is rejected with the file position.
//
//	products: [
//		{id: "case-01", name: "Phone Case", price: 1500, image: "img/case.png"},
//	]
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/nerocart/internal/cart"
)

//go:embed schema.cue
var schemaCUE string

// Catalog is an ordered, id-indexed list of products.
type Catalog struct {
	products []cart.Product
	byID     map[string]int
}

// LoadError reports an invalid catalog file.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(path, src)
}

// Parse validates CUE source against the catalog schema.
// filename is used in error positions only.
func Parse(filename string, src []byte) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}

	data := ctx.CompileBytes(src, cue.Filename(filename))
	if err := data.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(data)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var decoded struct {
		Products []cart.Product `json:"products"`
	}
	if err := v.Decode(&decoded); err != nil {
		return nil, formatCUEError(err)
	}

	return build(decoded.Products)
}

// New builds a catalog from products already in memory.
func New(products []cart.Product) (*Catalog, error) {
	for i, p := range products {
		if p.ID == "" {
			return nil, &LoadError{Field: fmt.Sprintf("products[%d].id", i), Message: "id is required"}
		}
		if p.Price < 0 {
			return nil, &LoadError{Field: fmt.Sprintf("products[%d].price", i), Message: "price must not be negative"}
		}
	}
	return build(products)
}

func build(products []cart.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]cart.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, &LoadError{
				Field:   fmt.Sprintf("products[%d].id", i),
				Message: fmt.Sprintf("duplicate product id %q", p.ID),
			}
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id string) (cart.Product, bool) {
	if c == nil {
		return cart.Product{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return cart.Product{}, false
	}
	return c.products[i], true
}

// Products returns the catalog in declaration order.
func (c *Catalog) Products() []cart.Product {
	if c == nil {
		return []cart.Product{}
	}
	out := make([]cart.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &LoadError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return &LoadError{Field: "cue", Message: first.Error()}
}
