package domain

import "time"

// WebhookEvent is an append-only record of a verified gateway delivery.
type WebhookEvent struct {
	ID             string
	EventType      string
	GatewayEventID *string
	Payload        []byte
	ReceivedAt     time.Time
}

func NewWebhookEvent(id, eventType, gatewayEventID string, payload []byte) *WebhookEvent {
	e := &WebhookEvent{
		ID:         id,
		EventType:  eventType,
		Payload:    payload,
		ReceivedAt: time.Now().UTC(),
	}
	if gatewayEventID != "" {
		e.GatewayEventID = &gatewayEventID
	}
	if e.EventType == "" {
		e.EventType = "unknown"
	}
	return e
}
