// Package harness runs YAML cart scenarios against a real cart.Store.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	catalog: products.cue        # optional, relative to the scenario file
//	shop: "Nero's Phone Accessories" # optional order recipient
//	initial: '[{"id":"a",...}]'  # optional payload stored before load
//	steps:
//	  - op: add
//	    id: case-01
//	    qty: 2
//	    expect: { panel: open }
//	  - op: change
//	    id: case-01
//	    delta: -1
//	  - op: fail_writes
//	  - op: remove
//	    id: case-01
//	    expect: { error: PERSIST_FAILED }
//	  - op: reload
//	assertions:
//	  - type: items
//	    items: [{ id: case-01, qty: 1 }]
//	  - type: total
//	    value: 1500
//
// # Step Operations
//
//   - add, change, remove, clear: the cart.Store mutations
//   - reload: re-initializes the store from the backend
//   - fail_writes, restore_writes: toggle backend write failures
//
// # Assertion Types
//
//   - items: ordered id/qty list (name and price when given)
//   - total, item_count: derived values
//   - empty: IsEmpty
//   - message: the cart order message, line by line
//   - persisted: the stored payload decodes to the in-memory cart
//
// Every scenario runs on a fresh in-memory backend, so traces are
// reproducible and suitable for golden comparison.
package harness
