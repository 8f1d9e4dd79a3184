// Package cart owns the shopping-cart state for one storefront session.
//
// Store is the single writer of the cart. It is created by Initialize,
// which reads the persisted cart from a kv.Backend, and it is changed only
// through four mutations:
//
//   - Add: append a product or increase its quantity
//   - ChangeQuantity: adjust by a signed delta, removing the item below 1
//   - Remove: drop an item by id
//   - Clear: empty the cart
//
// Every mutation writes the whole cart back to the backend before it
// returns, so the persisted copy is never older than the last completed
// mutation. A failed write is reported as an *Error with
// ErrCodePersistFailed; the in-memory cart keeps the change.
//
// # Invariants
//
//   - IDs are unique within the cart
//   - Qty is always >= 1
//   - Price, Name and Image are fixed by the first Add of an id; later Adds
//     only increase the quantity
//
// # Loading
//
// A missing, unreadable or malformed persisted cart loads as an empty cart.
// This is logged but never returned as an error.
//
// Store is not safe for concurrent use; callers drive it from a single
// goroutine, one user action at a time.
package cart
