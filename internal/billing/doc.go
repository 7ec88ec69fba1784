// Package billing implements the transaction workflow: a register holding
// at most one open transaction, accumulating line items against the product
// store, and appending a finalized record to the transaction store on
// completion.
//
// # State Machine
//
//	NoOpenTransaction → Create → Open
//	Open → AddItem / RemoveItem → Open
//	Open → Complete (items > 0) → NoOpenTransaction (record persisted)
//	Open → Abort → NoOpenTransaction (reserved stock returned, no trace)
//
// Adding an item decrements product stock immediately, so an open bill acts
// as a reservation. Abort is the explicit release path; killing the process
// mid-session leaks the reservation because the product snapshot on disk
// already reflects the decrement.
package billing
