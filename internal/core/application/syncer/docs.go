// Package syncer keeps the locally-held order collections consistent with
// server truth under polling, partial failure, and concurrent multi-actor
// edits.
//
// The Synchronizer exclusively owns the two collections (the open pool and
// the acting courier's own orders). User-triggered actions mutate the local
// view optimistically after the corresponding negotiation succeeds; periodic
// full reloads replace the collections wholesale. The merge is deliberately
// last-writer-wins: an optimistic mutation applied between two reloads is
// only as durable as the server's acceptance of it, and a reload landing
// right after a successful mutation may transiently revert the local view.
// That is a bounded, self-healing inconsistency, not a bug.
//
// The per-order busy marker is the sole concurrency-control primitive. It
// serializes actions per order id; actions on distinct ids proceed
// concurrently with no ordering guarantee between them. Reload results carry
// a generation counter, and a reload that finishes after a newer one has
// committed is discarded.
package syncer
