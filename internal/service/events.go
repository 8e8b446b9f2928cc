package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Event subjects published to NATS.
const (
	EventSubmissionSaved = "tahadi.submission.saved"
	EventOverrideApplied = "tahadi.override.applied"
	EventDayPosted       = "tahadi.day.posted"
	EventGroupCreated    = "tahadi.group.created"
	EventMemberJoined    = "tahadi.member.joined"
)

// Event is the envelope published for every domain event.
type Event struct {
	Subject    string                 `json:"subject"`
	GroupID    uint                   `json:"group_id"`
	ActorID    uint                   `json:"actor_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// EventPublisher emits domain events for downstream consumers (push
// notifications, digests). Publishing is best-effort; failures are logged
// and never fail the originating request.
type EventPublisher interface {
	Publish(event Event)
}

type natsPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
	now    func() time.Time
}

// NewNatsPublisher wraps a NATS connection as an EventPublisher. A nil
// connection yields a publisher that drops every event, so callers never
// need to nil-check.
func NewNatsPublisher(conn *nats.Conn, logger zerolog.Logger) EventPublisher {
	return &natsPublisher{
		conn:   conn,
		logger: logger.With().Str("component", "event_publisher").Logger(),
		now:    time.Now,
	}
}

func (p *natsPublisher) Publish(event Event) {
	if p.conn == nil {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", event.Subject).Msg("failed to encode event")
		return
	}

	if err := p.conn.Publish(event.Subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("subject", event.Subject).Msg("failed to publish event")
	}
}
