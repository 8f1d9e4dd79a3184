// Package codec serializes cart contents for the key-value backend.
//
// The persisted form is a JSON array of line-item objects:
//
//	[{"id":"case-01","name":"Phone Case","price":1500,"image":"img/case.png","qty":2}]
//
// Encoding disables HTML escaping and NFC-normalizes every string so the
// same cart always produces the same bytes.
//
// Decoding is strict about shape and lenient about extras: unknown object
// fields are ignored, but anything that cannot be a valid cart (non-array,
// empty or duplicate id, negative or fractional price, qty below 1) is
// reported as ErrMalformed so the caller can treat it as absent.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrMalformed marks a payload that does not decode into a valid cart.
var ErrMalformed = errors.New("malformed cart payload")

// MaxQty is the largest quantity a payload may carry. Writers must not
// store more, or the next Decode rejects the whole cart.
const MaxQty = math.MaxInt32

// Normalize returns s in Unicode NFC, the form Encode stores. Callers that
// compare ids against decoded records must normalize their side too.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Record is the persisted form of one line item.
type Record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
	Qty   int    `json:"qty"`
}

// Encode returns the persisted JSON text for records.
// A nil or empty slice encodes as "[]".
func Encode(records []Record) (string, error) {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = Record{
			ID:    Normalize(r.ID),
			Name:  Normalize(r.Name),
			Price: r.Price,
			Image: Normalize(r.Image),
			Qty:   r.Qty,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // names like "Tom & Jerry" stay readable
	if err := enc.Encode(out); err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// rawRecord defers number parsing so prices like 1500.0 are accepted
// and 12.5 is rejected instead of silently truncated.
type rawRecord struct {
	ID    *string      `json:"id"`
	Name  string       `json:"name"`
	Price *json.Number `json:"price"`
	Image string       `json:"image"`
	Qty   *json.Number `json:"qty"`
}

// Decode parses persisted JSON text. Strings come back in NFC, and ids are
// checked for duplicates after normalization. Any shape violation returns
// an error wrapping ErrMalformed.
func Decode(data string) ([]Record, error) {
	if strings.TrimSpace(data) == "" {
		return nil, fmt.Errorf("empty payload: %w", ErrMalformed)
	}

	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var raws []*rawRecord
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode cart: %v: %w", err, ErrMalformed)
	}
	if raws == nil {
		// "null" decodes into a nil slice
		return nil, fmt.Errorf("payload is not an array: %w", ErrMalformed)
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after array: %w", ErrMalformed)
	}

	records := make([]Record, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		r, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %v: %w", i, err, ErrMalformed)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("item[%d]: duplicate id %q: %w", i, r.ID, ErrMalformed)
		}
		seen[r.ID] = struct{}{}
		records = append(records, r)
	}

	return records, nil
}

func decodeRecord(raw *rawRecord) (Record, error) {
	if raw == nil {
		return Record{}, errors.New("null entry")
	}
	if raw.ID == nil || *raw.ID == "" {
		return Record{}, errors.New("missing id")
	}
	if raw.Price == nil {
		return Record{}, errors.New("missing price")
	}
	price, err := wholeNumber(*raw.Price)
	if err != nil {
		return Record{}, fmt.Errorf("price: %w", err)
	}
	if price < 0 {
		return Record{}, fmt.Errorf("negative price %d", price)
	}
	if raw.Qty == nil {
		return Record{}, errors.New("missing qty")
	}
	qty, err := wholeNumber(*raw.Qty)
	if err != nil {
		return Record{}, fmt.Errorf("qty: %w", err)
	}
	if qty < 1 || qty > MaxQty {
		return Record{}, fmt.Errorf("qty %d out of range", qty)
	}

	return Record{
		ID:    Normalize(*raw.ID),
		Name:  Normalize(raw.Name),
		Price: price,
		Image: Normalize(raw.Image),
		Qty:   int(qty),
	}, nil
}

// wholeNumber accepts integers and integral floats ("1500", "1500.0", "1.5e3").
func wholeNumber(n json.Number) (int64, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", n)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("not a whole number: %q", n)
	}
	return int64(f), nil
}
