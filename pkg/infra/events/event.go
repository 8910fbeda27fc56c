package events

import "encoding/json"

const (
	Channel = "stylegate:events"

	TypeThresholdsUpdated = "thresholds.updated"
	TypeRegistryChanged   = "registry.changed"
)

// Envelope is the wire format for pub/sub messages between gateway
// processes.
type Envelope struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

// ThresholdsUpdatedEvent announces a new threshold configuration
// version so peer processes swap their evaluator config without
// waiting for a restart.
type ThresholdsUpdatedEvent struct {
	Version    int64              `json:"version"`
	Thresholds map[string]float64 `json:"thresholds"`
}

// RegistryChangedEvent asks peers to refresh their style registry
// snapshot ahead of the staleness interval.
type RegistryChangedEvent struct {
	StyleID string `json:"style_id"`
}
