package notify

import (
	"encoding/json"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/NotJorge/tienda-informatica/internal/adapter/metrics"
	"github.com/NotJorge/tienda-informatica/internal/domain"
)

// Registry holds one Channel per entity type. It is built once at process
// start and passed by reference to whoever needs to broadcast or attach
// connections; there is no global channel state.
type Registry struct {
	channels map[string]*Channel
	clock    clockwork.Clock
}

// NewRegistry creates a registry with one running channel per name.
// maxClientsPerChannel <= 0 disables the cap. wsMetrics may be nil.
func NewRegistry(clock clockwork.Clock, maxClientsPerChannel int, wsMetrics *metrics.WebSocketMetrics, names ...string) *Registry {
	channels := make(map[string]*Channel, len(names))
	for _, name := range names {
		channels[name] = newChannel(name, maxClientsPerChannel, clock, wsMetrics)
	}
	return &Registry{channels: channels, clock: clock}
}

// Channel returns the channel for an entity type.
func (r *Registry) Channel(entity string) (*Channel, bool) {
	ch, ok := r.channels[entity]
	return ch, ok
}

// Broadcast constructs the notification message for one mutation, serializes
// it once, and fans it out to every connection on the entity's channel.
// Implements domain.Notifier. Errors never propagate to the caller: a
// mutation that committed is already done, and notification is best-effort.
func (r *Registry) Broadcast(entity string, op domain.Operation, payload any) {
	ch, ok := r.channels[entity]
	if !ok {
		slog.Warn("Broadcast to unknown channel", "channel", entity)
		return
	}

	msg := NewMessage(entity, op, payload, r.clock.Now())
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to marshal notification", "channel", entity, "operation", op, "error", err)
		return
	}

	ch.Broadcast(data)
}

// Stop shuts down every channel, closing all connections.
func (r *Registry) Stop() {
	for _, ch := range r.channels {
		ch.Stop()
	}
}
