package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// runNamespace scopes run IDs so they never collide with other UUIDv5 users.
var runNamespace = uuid.MustParse("6f1c2a4e-3b7d-5c9e-8a10-2d4f6b8e0c13")

// ParseRawEvent deserializes a RawEvent's value into a SimulationRequest.
func ParseRawEvent(raw RawEvent) (SimulationRequest, error) {
	var req SimulationRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return SimulationRequest{}, fmt.Errorf("parse raw event: %w", err)
	}
	if req.RequestID == "" {
		req.RequestID = raw.Headers["request_id"]
	}
	return req, nil
}

// RunID derives a deterministic UUIDv5 from the canonical JSON of p.
// Replaying the same parameters yields the same ID.
func RunID(p SimulationParameters) string {
	canonical, err := json.Marshal(p)
	if err != nil {
		return uuid.Nil.String()
	}
	return uuid.NewSHA1(runNamespace, canonical).String()
}

// NewRecord wraps an outcome for publication, stamped at processedAt. The
// record ID is the caller's request ID when present, otherwise the run ID.
func NewRecord(req SimulationRequest, outcome Outcome, site *Site, processedAt time.Time) SimulationRecord {
	id := req.RequestID
	if id == "" {
		id = RunID(req.SimulationParameters)
	}
	return SimulationRecord{
		ID:          id,
		RequestID:   req.RequestID,
		Outcome:     outcome,
		Site:        site,
		ProcessedAt: processedAt.UTC(),
	}
}

// SerializeRecord converts a SimulationRecord into an OutputEvent with the
// outcome kind and threat level carried as headers.
func SerializeRecord(rec SimulationRecord) (OutputEvent, error) {
	value, err := json.Marshal(rec)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize record: %w", err)
	}

	headers := map[string]string{
		"outcome":      rec.Outcome.Kind(),
		"ok":           strconv.FormatBool(rec.Outcome.OK),
		"processed_at": rec.ProcessedAt.Format(time.RFC3339),
	}
	if threat := rec.Outcome.Threat(); threat != "" {
		headers["threat_level"] = string(threat)
	}
	if rec.Outcome.ErrorKind != "" {
		headers["error_kind"] = string(rec.Outcome.ErrorKind)
	}

	return OutputEvent{
		Key:     []byte(rec.ID),
		Value:   value,
		Headers: headers,
	}, nil
}
