package events

import "time"

// Envelope is the shared event shape used in AdVidly.
// Payload stays loosely typed; consumers re-decode into their own structs.
type Envelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	SourceService string    `json:"source_service"`
	OccurredAtUTC time.Time `json:"occurred_at_utc"`
	EntityType    string    `json:"entity_type"`
	EntityID      int64     `json:"entity_id"`
	Payload       any       `json:"payload"`
}
