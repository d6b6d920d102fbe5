// Package events publishes verification lifecycle events so downstream
// consumers (moderation dashboards, analytics) can follow demotions without
// polling the directory. Publishing is best effort and optional: a nil
// publisher is valid wiring and drops events silently.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"supportdir/internal/platform/config"
)

// Kind classifies a lifecycle event.
type Kind string

const (
	// KindReminderSent records a day-90 reminder notification.
	KindReminderSent Kind = "reminder_sent"

	// KindOrganisationUnverified records a demotion to unverified.
	KindOrganisationUnverified Kind = "organisation_unverified"
)

// Event is one lifecycle occurrence for one organisation.
type Event struct {
	Kind           Kind      `json:"kind"`
	OrganisationID uuid.UUID `json:"organisation_id"`
	Organisation   string    `json:"organisation"`
	Recipient      string    `json:"recipient,omitempty"`
	ElapsedDays    int       `json:"elapsed_days"`
	At             time.Time `json:"at"`
}

// Publisher emits lifecycle events.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// KafkaPublisher writes lifecycle events to a Kafka topic, keyed by
// organisation ID so per-organisation ordering is preserved.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects to the configured brokers. Returns nil if no
// brokers are configured (publishing disabled).
func NewKafkaPublisher(cfg config.Kafka) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &KafkaPublisher{client: client, topic: cfg.Topic}, nil
}

// Emit synchronously publishes one event.
func (p *KafkaPublisher) Emit(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lifecycle event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.OrganisationID.String()),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish lifecycle event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
