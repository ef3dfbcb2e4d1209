// Package notify implements the per-entity websocket notification channels.
//
// Each entity type owns one Channel: a single goroutine that holds the set of
// live connections and processes register/unregister/broadcast commands from
// a buffered command channel (no mutexes). Per-connection writer goroutines
// with bounded buffers absorb slow clients; a client whose buffer fills is
// dropped rather than allowed to stall the fan-out. Delivery is best-effort
// and fire-and-forget.
package notify
