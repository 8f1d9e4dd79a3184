// Package order turns cart contents into a message and hands it to an
// external messaging service through a deep link.
//
// Flow composes three kinds of message:
//   - OrderCart: the whole cart, rejected with cart.ErrEmptyCart before
//     any text is built or any link is opened
//   - OrderNow: one product, bypassing the cart
//   - Contact: the storefront contact form
//
// The text is URL-encoded into a wa.me link by Link and passed to an
// Opener, which is the only side effect of a flow.
package order
