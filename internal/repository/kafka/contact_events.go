package kafka

import (
	"context"

	"github.com/NordCoder/Bloggerus/internal/domain/kafka"
)

type ContactEventsKafka struct {
	p *Producer
}

func NewContactEventsKafka(p *Producer) *ContactEventsKafka { return &ContactEventsKafka{p: p} }

var _ kafka.ContactEvents = (*ContactEventsKafka)(nil)

func (e *ContactEventsKafka) PublishContactReceived(ctx context.Context, contactID int64) error {
	return e.p.PublishJSON(ctx, KeyFromInt64(contactID), kafka.ContactReceivedEvent{
		ContactID: contactID,
	})
}
