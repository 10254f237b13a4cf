package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher drains mirrored audit entries and produces them to a Kafka
// topic. Publishing is downstream of the committed trail: a broker outage
// never affects the synchronous store.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	inbox  <-chan Entry
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, inbox <-chan Entry, logger *slog.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{client: client, topic: topic, inbox: inbox, logger: logger}, nil
}

func (p *KafkaPublisher) Run(ctx context.Context) error {
	defer p.client.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry := <-p.inbox:
			p.publish(ctx, entry)
		}
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, entry Entry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to encode audit entry", "entry_id", entry.ID, "error", err)
		return
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(entry.Action),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.ErrorContext(ctx, "failed to publish audit entry", "entry_id", entry.ID, "error", err)
		}
	})
}
