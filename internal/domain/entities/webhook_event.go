package entities

import "time"

// WebhookEvent is an entry of the inbound provider event ledger.
//
// Storage model (DynamoDB):
//   - PK: id, formatted as <provider>#<event_id>, so (provider, event_id) is unique
//     and the conditional put is the dedup check.
//
// The ledger is append-only. Payload keeps the byte-exact request body for audit and
// replay.

type WebhookEvent struct {
	ID         string    `json:"id"`
	Provider   Provider  `json:"provider"`
	EventID    string    `json:"event_id"`
	Payload    []byte    `json:"payload"`
	ReceivedAt time.Time `json:"received_at"`
}

func (e WebhookEvent) Found() bool {
	return e.ID != ""
}
