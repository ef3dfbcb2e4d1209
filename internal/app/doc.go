// Package app provides the application service layer.
//
// One service per entity orchestrates its use cases: listing, lookup through
// the Redis read-through cache, and create/update/delete with cache
// maintenance and a websocket broadcast after every committed mutation.
// Sits between HTTP handlers and domain repositories. Depends on domain
// interfaces, not concrete implementations.
package app
