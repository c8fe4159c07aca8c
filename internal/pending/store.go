package pending

import "context"

// Store is a string key-value area partitioned by scope. A scope is usually
// the caller identity, so two users never see each other's pending state.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	// Remove deletes the key. Removing a missing key is not an error.
	Remove(ctx context.Context, scope, key string) error
}
