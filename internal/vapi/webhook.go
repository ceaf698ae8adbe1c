package vapi

import (
	"encoding/json"
	"time"
)

// Webhook event types the provider delivers. Delivery is at-least-once and
// unordered; consumers must not assume causal arrival.
const (
	EventCallStarted       = "call-started"
	EventCallEnded         = "call-ended"
	EventTranscriptUpdated = "transcript-updated"
)

// Provider-side call statuses seen on call-ended events. Anything other than
// "completed" is treated as an unsuccessful ending.
const CallStatusCompleted = "completed"

// WebhookEvent is the envelope of an inbound call lifecycle event.
type WebhookEvent struct {
	Type string      `json:"type"`
	Call WebhookCall `json:"call"`
}

type WebhookCall struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Customer   Customer        `json:"customer"`
	Metadata   CallMetadata    `json:"metadata"`
	Transcript string          `json:"transcript,omitempty"`
	Summary    string          `json:"summary,omitempty"`
	Analysis   json.RawMessage `json:"analysis,omitempty"`
	StartedAt  *time.Time      `json:"startedAt,omitempty"`
	EndedAt    *time.Time      `json:"endedAt,omitempty"`
	CreatedAt  *time.Time      `json:"createdAt,omitempty"`
}
