package notify

import (
	"time"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

// Message is the immutable record of one entity mutation. It is constructed
// once per successful write, serialized once, delivered to every subscriber
// of the entity's channel, and discarded.
type Message struct {
	Entity    string           `json:"entity"`
	Operation domain.Operation `json:"operation"`
	Payload   any              `json:"payload"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewMessage builds a notification for one mutation of the given entity type.
func NewMessage(entity string, op domain.Operation, payload any, at time.Time) Message {
	return Message{
		Entity:    entity,
		Operation: op,
		Payload:   payload,
		CreatedAt: at,
	}
}
