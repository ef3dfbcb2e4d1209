// Package domain holds the store's entities, request/response types, and the
// interfaces the application layer depends on. It has no knowledge of HTTP,
// SQL, or Redis.
package domain
