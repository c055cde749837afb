// Package order contains the canonical order model and the normalization
// logic that maps raw, multi-vocabulary server payloads onto it.
//
// The backends this client talks to disagree on both field names and status
// vocabulary: an order's identity may arrive as id, order_id, or orderId, and
// its status in either English or German, under several synonyms per state.
// Everything downstream of this package (negotiation, synchronization, the
// facade) works exclusively with the canonical Status enumeration and the
// coalesced Order record produced here.
//
// Normalization is pure and total: it performs no I/O, never panics, and maps
// every possible input string to exactly one canonical status. Unknown but
// non-empty tokens are treated as "in progress" rather than errors so that a
// new server-side status never crashes the pipeline.
package order
