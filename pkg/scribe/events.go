package scribe

import (
	"context"
	"fmt"

	"github.com/synaptica-ai/scribe/pkg/common/kafka"
	"github.com/synaptica-ai/scribe/pkg/common/logger"
	"github.com/synaptica-ai/scribe/pkg/common/models"
)

// HandleUtteranceEvent adapts the transcription stream to ProcessUtterance.
// Events that can never be processed are marked for the DLQ.
func (s *Service) HandleUtteranceEvent(ctx context.Context, event models.Event) error {
	if event.Type != "" && event.Type != models.EventUtterance {
		logger.Log.WithFields(map[string]interface{}{
			"event_id":   event.ID,
			"event_type": event.Type,
		}).Debug("ignoring non-utterance event")
		return nil
	}

	u, err := models.UtteranceFromEvent(event)
	if err != nil {
		return fmt.Errorf("%w: event %s: %v", kafka.ErrDeadLetter, event.ID, err)
	}

	if _, err := s.ProcessUtterance(ctx, u.SessionID, u.Text, u.Speaker, u.Timestamp); err != nil {
		if IsValidationError(err) {
			return fmt.Errorf("%w: event %s: %v", kafka.ErrDeadLetter, event.ID, err)
		}
		return err
	}
	return nil
}
