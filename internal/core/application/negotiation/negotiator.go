package negotiation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"orderlink/internal/core/ports"

	"github.com/google/uuid"
)

// MaxDetailLength bounds the diagnostic carried by an exhausted result so it
// stays displayable in a user-facing message.
const MaxDetailLength = 240

// Candidate is one concrete (endpoint, payload-shape) pair attempted during a
// negotiation. Path is relative to the transport's base URL.
type Candidate struct {
	Method string
	Path   string
	Body   any
}

// Outcome discriminates the result of a negotiation.
type Outcome int

const (
	// OutcomeSuccess means some candidate returned 2xx.
	OutcomeSuccess Outcome = iota + 1

	// OutcomeAuthRequired means the server rejected the credential; the
	// negotiation was aborted without trying further candidates.
	OutcomeAuthRequired

	// OutcomeExhausted means every candidate was tried and none succeeded.
	OutcomeExhausted
)

// Result is the outcome of one negotiation.
//
// Data holds the decoded JSON body of the winning response (nil when the body
// was empty or not JSON). Detail holds the truncated last error for exhausted
// results.
type Result struct {
	Outcome Outcome
	Data    any
	Detail  string
}

// Success reports whether the negotiation found a working candidate.
func (r Result) Success() bool {
	return r.Outcome == OutcomeSuccess
}

// DataObject returns the decoded body as an object, or an empty map when the
// body was absent or not an object.
func (r Result) DataObject() map[string]any {
	if obj, ok := r.Data.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

// Negotiator drives candidate lists through a transport capability.
// It owns no candidate lists itself and performs no retries; timeouts are the
// transport's concern.
type Negotiator struct {
	transport ports.Transport
	cache     ports.CandidateCache
	logger    *slog.Logger
}

// NewNegotiator creates a Negotiator. cache may be nil, which disables the
// last-winner promotion.
func NewNegotiator(transport ports.Transport, cache ports.CandidateCache, logger *slog.Logger) *Negotiator {
	return &Negotiator{
		transport: transport,
		cache:     cache,
		logger:    logger.With("component", "negotiator"),
	}
}

// Negotiate tries the candidates in priority order and returns the first
// success, an auth abort, or exhaustion. See the package documentation for
// the exact rules.
func (n *Negotiator) Negotiate(ctx context.Context, operation string, candidates []Candidate) Result {
	logger := n.logger.With("operation", operation, "negotiation_id", uuid.NewString())

	lastDetail := ""
	for _, idx := range n.attemptOrder(ctx, operation, len(candidates)) {
		candidate := candidates[idx]

		resp, err := n.transport.Do(ctx, ports.Request{
			Method: candidate.Method,
			Path:   candidate.Path,
			Body:   candidate.Body,
		})
		if err != nil {
			// Transport-level failure (including timeout) advances the
			// negotiation exactly like a non-2xx response.
			lastDetail = Truncate(err.Error())
			logger.DebugContext(ctx, "Candidate unreachable",
				"candidate", candidate.Path, "error", err)
			continue
		}

		if resp.StatusCode == http.StatusUnauthorized {
			logger.InfoContext(ctx, "Negotiation aborted: credential rejected",
				"candidate", candidate.Path)
			return Result{Outcome: OutcomeAuthRequired}
		}

		if resp.IsSuccess() {
			n.rememberWinner(ctx, operation, idx)
			logger.DebugContext(ctx, "Candidate accepted",
				"candidate", candidate.Path, "status", resp.StatusCode)
			return Result{Outcome: OutcomeSuccess, Data: decodeLenient(resp.Body)}
		}

		lastDetail = Truncate(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Body))
		logger.DebugContext(ctx, "Candidate rejected",
			"candidate", candidate.Path, "status", resp.StatusCode)
	}

	logger.WarnContext(ctx, "Negotiation exhausted",
		"candidates", len(candidates), "last_error", lastDetail)
	return Result{Outcome: OutcomeExhausted, Detail: lastDetail}
}

// NegotiateList is the simpler read variant: it tries a list of GET paths
// only (no payload variants) and returns the first well-formed response,
// applying the same one-shot-per-candidate, no-retry rule.
func (n *Negotiator) NegotiateList(ctx context.Context, operation string, paths []string) Result {
	candidates := make([]Candidate, len(paths))
	for i, path := range paths {
		candidates[i] = Candidate{Method: http.MethodGet, Path: path}
	}
	return n.Negotiate(ctx, operation, candidates)
}

// attemptOrder yields candidate indices in declared order, with a remembered
// winner for the operation promoted to the front.
func (n *Negotiator) attemptOrder(ctx context.Context, operation string, count int) []int {
	order := make([]int, 0, count)
	for i := 0; i < count; i++ {
		order = append(order, i)
	}

	if n.cache == nil {
		return order
	}
	winner, ok := n.cache.LastSuccess(ctx, operation)
	if !ok || winner <= 0 || winner >= count {
		return order
	}

	promoted := append(make([]int, 0, count), winner)
	for _, i := range order {
		if i != winner {
			promoted = append(promoted, i)
		}
	}
	return promoted
}

func (n *Negotiator) rememberWinner(ctx context.Context, operation string, index int) {
	if n.cache == nil {
		return
	}
	if err := n.cache.RememberSuccess(ctx, operation, index); err != nil {
		n.logger.WarnContext(ctx, "Failed to remember winning candidate",
			"operation", operation, "error", err)
	}
}

// decodeLenient parses a response body as JSON, treating empty or
// non-parseable bodies as an absent payload.
func decodeLenient(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}
	return data
}

// Truncate bounds a diagnostic string to MaxDetailLength bytes for display.
func Truncate(detail string) string {
	if len(detail) > MaxDetailLength {
		return detail[:MaxDetailLength]
	}
	return detail
}
