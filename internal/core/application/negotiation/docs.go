// Package negotiation implements the endpoint/payload negotiator: a generic
// "try candidate requests in priority order until one succeeds" executor.
//
// The backends this client integrates with expose the same logical operation
// under several plausible endpoint and payload shapes, and which shape a
// given deployment accepts is unknown until call time. Each operation
// therefore declares an ordered candidate list whose ordering encodes
// decreasing prior probability of acceptance; the negotiator walks it
// deterministically and stops at the first success. The candidate list is a
// reviewable contract: negotiation order is chosen by the caller, never
// discovered here.
//
// Rules, in order of precedence:
//   - The first 2xx response wins and ends the negotiation. Its body is
//     parsed as JSON when possible; a non-parseable body on a 2xx response
//     is an empty success payload, not a failure.
//   - HTTP 401 aborts the entire negotiation as AuthRequired, because no
//     alternative request shape can fix a missing or invalid credential.
//   - Any other failure (network error, other 4xx/5xx) advances to the next
//     candidate. Each candidate is attempted exactly once; there are no
//     retries beyond the listed candidates.
//   - When every candidate fails the result is Exhausted, carrying the last
//     observed error truncated to a displayable length.
//
// A CandidateCache, when provided, promotes the last known-good candidate of
// an operation to the front of the list on subsequent negotiations.
package negotiation
