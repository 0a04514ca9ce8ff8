package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the request topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// SimulationRequest is the wire form of a queued simulation: the parameters
// plus an optional caller-chosen correlation ID.
type SimulationRequest struct {
	RequestID string `json:"request_id,omitempty"`
	SimulationParameters
}

// Site describes ground zero in human terms.
type Site struct {
	Name             string  `json:"name,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Confidence       float64 `json:"confidence,omitempty"`
	Source           string  `json:"source"` // "forward", "reverse", "original", "failed"
}

// SimulationRecord is the enriched result published for one request.
type SimulationRecord struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id,omitempty"`
	Outcome     Outcome   `json:"outcome"`
	Site        *Site     `json:"site,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the outcome topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
