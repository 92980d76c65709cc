package models

import "testing"

func TestUtteranceFromEvent(t *testing.T) {
	event := Event{Type: EventUtterance, Data: map[string]interface{}{
		"session_id": "abc",
		"text":       "I have a headache",
		"speaker":    "patient",
	}}
	u, err := UtteranceFromEvent(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.SessionID != "abc" || u.Text != "I have a headache" || u.Speaker != "patient" || u.Timestamp != "" {
		t.Fatalf("unexpected utterance %+v", u)
	}
}

func TestUtteranceFromEventRejectsWrongTypes(t *testing.T) {
	event := Event{Data: map[string]interface{}{"session_id": "abc", "text": 42.0}}
	if _, err := UtteranceFromEvent(event); err == nil {
		t.Fatalf("expected error for numeric text")
	}
}
