package domain

import "context"

// Operation tags the kind of mutation a notification describes.
type Operation string

const (
	OperationCreate Operation = "CREATE"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// Channel names, one per entity type. Each name identifies the set of live
// websocket connections subscribed to that entity's mutations.
const (
	ChannelProduct  = "Product"
	ChannelCategory = "Category"
	ChannelSupplier = "Suppliers"
	ChannelClient   = "Client"
	ChannelEmployee = "Employee"
)

// Notifier pushes a mutation notification to every connection subscribed to
// the entity's channel. Delivery is best-effort and fire-and-forget: a failed
// or missed delivery is never reported back to the caller.
type Notifier interface {
	Broadcast(entity string, op Operation, payload any)
}

// Cache is an explicit get/put/evict cache for entity-by-id lookups.
// Implementations are best-effort: Put and Evict swallow and log their own
// failures, and a miss is indistinguishable from a cache error. A cache
// problem must never block or fail the surrounding operation.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Put(ctx context.Context, key string, value T)
	Evict(ctx context.Context, key string)
}
