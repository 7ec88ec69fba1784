// Package export writes ledger data to external formats: plain CSV for
// spreadsheets and a SQLite archive for ad-hoc querying. Exports are
// one-way; the binary snapshots remain the source of truth.
package export
