package ports

import "context"

// KeyValueStore is the persistent local store shared with the cart/profile
// flow. The integration core only reads from it (to recover a previously
// chosen delivery address); writes belong to the out-of-scope cart flow.
type KeyValueStore interface {
	// Get returns the value for key, or ("", nil) when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// KeyDeliveryAddress is the store key under which the profile flow saves the
// customer's chosen delivery address.
const KeyDeliveryAddress = "delivery_address"

// CandidateCache remembers which candidate last succeeded for an operation so
// later negotiations can try the known-good shape first. Observable
// negotiation outcomes are unchanged; only attempt order shifts.
type CandidateCache interface {
	// LastSuccess returns the remembered candidate index for the operation
	// and whether one is known.
	LastSuccess(ctx context.Context, operation string) (int, bool)
	RememberSuccess(ctx context.Context, operation string, index int) error
}
