//go:build integration

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"supportdir/internal/platform/config"
	"supportdir/pkg/testutil/containers"
)

func TestKafkaPublisher_EmitRoundTrip(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	const topic = "supportdir.lifecycle.test"

	admClient, err := kgo.NewClient(kgo.SeedBrokers(rp.Broker))
	require.NoError(t, err)
	defer admClient.Close()

	adm := kadm.NewClient(admClient)
	_, err = adm.CreateTopics(ctx, 1, 1, nil, topic)
	require.NoError(t, err)

	publisher, err := NewKafkaPublisher(config.Kafka{Brokers: []string{rp.Broker}, Topic: topic})
	require.NoError(t, err)
	require.NotNil(t, publisher)
	defer publisher.Close()

	event := Event{
		Kind:           KindOrganisationUnverified,
		OrganisationID: uuid.New(),
		Organisation:   "Shelter North",
		ElapsedDays:    105,
		At:             time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.Emit(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, event.OrganisationID.String(), string(records[0].Key))

	var got Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, KindOrganisationUnverified, got.Kind)
	assert.Equal(t, 105, got.ElapsedDays)
}
