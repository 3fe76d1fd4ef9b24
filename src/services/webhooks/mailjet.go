package webhooks

import (
	"encoding/json"
	"fmt"

	"nextglide-backend/src/models"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// eventsSchema describes the batch the mail provider posts: a list of
// objects that each name an event type.
var eventsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"event"},
		"properties": map[string]any{
			"event": map[string]any{"type": "string"},
			"email": map[string]any{"type": "string"},
		},
	},
}

// MailEvents records delivery events. It never changes stored state.
type MailEvents struct {
	log *zap.Logger
}

func NewMailEvents(log *zap.Logger) *MailEvents {
	return &MailEvents{log: log}
}

// Handle logs every event of body and returns how many were read. A body
// that is not an event list is logged and otherwise ignored.
func (h *MailEvents) Handle(body []byte) int {
	events, err := decodeEvents(body)
	if err != nil {
		h.log.Info("mail webhook received unexpected payload",
			zap.ByteString("body", body),
			zap.Error(err),
		)
		return 0
	}
	for _, ev := range events {
		switch ev.Event {
		case "bounce":
			h.log.Warn("email bounced", zap.String("email", ev.Email))
		case "open":
			h.log.Info("email opened", zap.String("email", ev.Email))
		}
		h.log.Info("mail event", zap.String("event", ev.Event), zap.String("email", ev.Email))
	}
	return len(events)
}

func decodeEvents(body []byte) ([]models.MailEvent, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	var events []models.MailEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func validate(doc any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(eventsSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("payload validation failed: %v", errs)
	}
	return nil
}
