// Package store implements the fixed-capacity record store backing every
// entity kind in shopbook.
//
// A store owns an array-backed collection of at most 100 records with:
//   - Unique-key insert (DUPLICATE_KEY on collision)
//   - Key lookup (binary search for ordered stores, linear otherwise)
//   - In-place update (key fields are immutable)
//   - Compacting delete (order-preserving shift-left)
//   - Whole-collection binary snapshot save/load
//
// # Snapshot Format
//
// Each store persists to one file: a little-endian int32 live count followed
// by that many fixed-width records. String fields are NUL-padded to declared
// widths, integers are little-endian int32, money is little-endian float64
// bits. Saves go through a temp file and rename so a crash mid-write cannot
// truncate the previous snapshot.
//
// # Load Policy
//
// A missing snapshot file loads as an empty store with no error (fresh
// start). A structurally invalid snapshot (count outside [0, capacity],
// body length mismatch) also loads as an empty store but returns a
// CORRUPT_STORE error so the caller can report the data loss instead of
// silently absorbing it.
package store
