// Package ledger defines the four entity kinds shopbook keeps records of
// (products, customers, transactions, financial records) and the domain
// stores that own them.
//
// Each domain store wraps one fixed-capacity record store with:
//   - Input validation (required fields, non-negative money and stock)
//   - The entity's fixed-width snapshot codec
//   - Derived queries (substring search, category grouping, low stock,
//     date-range filtering)
//
// Cross-references between entities are by id value only, resolved at use
// time; no record is ever shared by reference across stores. Transaction
// line items snapshot the product name and price at add time, so historical
// transactions are unaffected by later product edits.
package ledger
