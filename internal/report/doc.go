// Package report computes read-only aggregations over loaded stores: sales
// summaries, income statements, expense breakdowns, profit and loss with
// monthly rows, trend series for plotting, and the toy revenue/expense
// forecast.
//
// All functions are pure over the records they are handed; nothing in this
// package persists state. Date bounds are validated up front so the
// lexicographic range comparison underneath cannot silently mis-filter.
// Money is accumulated with decimal arithmetic and only converted back to
// float64 at the edges.
package report
