package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/qrally/qrally/internal/model"
)

// Publisher forwards scan workflow events to the owning user's SSE
// connections. It satisfies the scan service's event sink so the
// browser sees each stage of a scan as it happens.
type Publisher struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewPublisher creates a new Publisher
func NewPublisher(hubManager *HubManager, logger *slog.Logger) *Publisher {
	return &Publisher{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-publisher")),
	}
}

// Publish sends a scan event to the user's hub. Events for users with
// no open connections are dropped; scan processing never waits on
// delivery.
func (p *Publisher) Publish(event model.ScanEvent) {
	hub := p.hubManager.GetHub(event.UserID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("sse failed to marshal scan event",
			slog.String("user_id", string(event.UserID)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}
