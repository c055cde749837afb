// Package actions builds the candidate request sets for each logical order
// operation and drives them through the negotiator.
//
// Every operation declares its endpoint paths (and, for checkout, its payload
// shapes) as static priority lists; the lists are the reviewable contract for
// what gets tried against the backend and in which order. Client-side
// preconditions (non-negative ETA minutes, finite coordinates, a canonical
// target status) are enforced before any network traffic so that validation
// failures never consume a negotiation.
//
// Each mutating action funnels through the negotiator exactly once and never
// retries after returning; recovery from failure is the synchronizer's job.
package actions
