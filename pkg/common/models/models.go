package models

import (
	"time"
)

// Event is the envelope for everything on the bus.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // utterance, report.updated, report.finalized
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

const (
	EventUtterance       = "utterance"
	EventReportUpdated   = "report.updated"
	EventReportFinalized = "report.finalized"
)

// UtteranceEvent is the data payload of an utterance event published by the
// transcription transport.
type UtteranceEvent struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
	Speaker   string `json:"speaker"`
	Timestamp string `json:"timestamp,omitempty"`
}

// UtteranceFromEvent decodes an event's data map. Missing string fields decode
// as empty; non-string values are an error.
func UtteranceFromEvent(event Event) (UtteranceEvent, error) {
	var u UtteranceEvent
	var err error
	if u.SessionID, err = stringField(event.Data, "session_id"); err != nil {
		return u, err
	}
	if u.Text, err = stringField(event.Data, "text"); err != nil {
		return u, err
	}
	if u.Speaker, err = stringField(event.Data, "speaker"); err != nil {
		return u, err
	}
	if u.Timestamp, err = stringField(event.Data, "timestamp"); err != nil {
		return u, err
	}
	return u, nil
}

// API payloads
type UtteranceRequest struct {
	Text      string `json:"text"`
	Speaker   string `json:"speaker"`
	Timestamp string `json:"timestamp,omitempty"`
}

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CorpusResponse struct {
	Records int `json:"records"`
}

type RenderRequest struct {
	Format string `json:"format"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
