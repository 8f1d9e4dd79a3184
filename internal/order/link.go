package order

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Link returns the messaging deep link for phone with text pre-filled.
// phone is the international number without "+" or separators.
func Link(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + escapeText(text)
}

// escapeText percent-encodes text the way browsers' encodeURIComponent
// does for spaces ("%20", not "+").
func escapeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// Opener opens a deep link, e.g. by launching a browser or printing it.
type Opener interface {
	Open(ctx context.Context, link string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, link string) error

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context, link string) error {
	return f(ctx, link)
}

// PrintOpener writes the link to W, one per line.
type PrintOpener struct {
	W io.Writer
}

// Open implements Opener.
func (p PrintOpener) Open(_ context.Context, link string) error {
	if _, err := fmt.Fprintln(p.W, link); err != nil {
		return fmt.Errorf("print link: %w", err)
	}
	return nil
}
