package order

import (
	"fmt"
	"strings"

	"orderlink/internal/pkg/errs"
)

// Status represents the canonical lifecycle state of an order.
// Every raw status token received from any source endpoint maps to exactly
// one Status via Normalize.
//
// Canonical transitions:
//
//	Open ──> Claimed ──> InTransit ──> Arrived ──> Completed
//	  │          │            │            │
//	  └──────────┴────────────┴────────────┴──> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values; Normalize
	// never produces it.
	Unknown Status = iota

	// Open is an order nobody has claimed yet.
	Open

	// Claimed is an order accepted by a courier but not yet moving.
	// It also absorbs any unrecognized "in progress" token.
	Claimed

	// InTransit is an order on its way to the customer.
	InTransit

	// Arrived is an order whose courier reached the destination.
	Arrived

	// Completed is a delivered order. Terminal.
	Completed

	// Cancelled is an aborted order, reachable from any non-terminal state. Terminal.
	Cancelled
)

// statusAliases maps known synonyms, in both the English and the German
// vocabulary the backends emit, onto a canonical target token.
var statusAliases = map[string]string{
	"accepted":   "claimed",
	"accept":     "claimed",
	"angenommen": "claimed",
	"claim":      "claimed",

	"on_the_way": "in_transit",
	"unterwegs":  "in_transit",

	"angekommen": "arrived",

	"delivered":     "completed",
	"finished":      "completed",
	"complete":      "completed",
	"abgeschlossen": "completed",
	"fertig":        "completed",

	"canceled":  "cancelled",
	"storniert": "cancelled",
}

// The three disjoint membership sets that classify a target token. Anything
// unclassified falls through to Claimed ("in progress").
var (
	doneStates      = map[string]bool{"completed": true, "done": true}
	cancelledStates = map[string]bool{"cancelled": true}
	openStates      = map[string]bool{"open": true, "offen": true, "pending": true, "neu": true, "wartet_bestätigung": true}
)

// Normalize maps a raw status token to its canonical Status.
//
// The input is lower-cased and trimmed, resolved through the alias table, and
// classified by the membership sets. The function is pure and total: empty or
// absent input normalizes to Open, and any unknown non-empty token normalizes
// to Claimed instead of failing. It is also idempotent over its own String
// form: Normalize(s.String()) == s for every produced Status.
func Normalize(raw string) Status {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return Open
	}
	if target, ok := statusAliases[token]; ok {
		token = target
	}

	switch {
	case doneStates[token]:
		return Completed
	case cancelledStates[token]:
		return Cancelled
	case openStates[token]:
		return Open
	case token == "in_transit":
		return InTransit
	case token == "arrived":
		return Arrived
	default:
		return Claimed
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Open:      "open",
		Claimed:   "claimed",
		InTransit: "in_transit",
		Arrived:   "arrived",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getWireTokens returns the token each canonical Status is submitted as in
// set-status request bodies. The deployed backends speak the original
// (German) vocabulary.
func getWireTokens() map[Status]string {
	return map[Status]string{
		Open:      "offen",
		Claimed:   "angenommen",
		InTransit: "unterwegs",
		Arrived:   "angekommen",
		Completed: "abgeschlossen",
		Cancelled: "storniert",
	}
}

// String returns the canonical token for the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status is one of the six canonical values.
// Unknown (0) and out-of-range values are invalid. Used to vet
// externally-supplied target statuses before a set-status dispatch.
func (s Status) Validate() error {
	if s < Open || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a canonical status", s))
	}
	return nil
}

// WireToken returns the token submitted to the backends for this status.
// Returns an empty string for invalid statuses.
func (s Status) WireToken() string {
	return getWireTokens()[s]
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == Completed || s == Cancelled
}

// Next computes the single successor state for one-click progression.
//
// Successors follow the canonical chain Open -> Claimed -> InTransit ->
// Arrived -> Completed. Terminal states return themselves; explicit shortcuts
// to any target state go through set-status directly, since real-world
// handling may skip steps.
func (s Status) Next() Status {
	switch s {
	case Open:
		return Claimed
	case Claimed:
		return InTransit
	case InTransit:
		return Arrived
	case Arrived:
		return Completed
	case Completed, Cancelled:
		return s
	default:
		return Claimed
	}
}
