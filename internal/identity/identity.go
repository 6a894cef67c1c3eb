// Package identity carries the resolved caller identity through a request
// context. Authentication lives in middleware; everything below the handler
// receives the owner id as an explicit parameter instead.
package identity

import "context"

type ownerKey struct{}

// WithOwner returns a copy of ctx carrying ownerID.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// Owner returns the owner id stored by WithOwner.
// ok is false when no identity was resolved or the id is empty.
func Owner(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerKey{}).(string)
	return id, ok && id != ""
}
