//go:build integration
// +build integration

package service

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/systok/clip-feed-go/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestRabbitMQ(t *testing.T) (config.RabbitMQConfig, func()) {
	ctx := context.Background()

	rabbitmqContainer, err := rabbitmq.Run(ctx,
		"rabbitmq:3.13-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	host, err := rabbitmqContainer.Host(ctx)
	require.NoError(t, err)

	port, err := rabbitmqContainer.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	cfg := config.RabbitMQConfig{
		Host:       host,
		Port:       port.Int(),
		User:       "guest",
		Password:   "guest",
		Exchange:   "test.clips",
		Queue:      "test.clips.engagement",
		RoutingKey: "clip.engagement",
	}

	cleanup := func() {
		if err := rabbitmqContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return cfg, cleanup
}

func TestRabbitMQPublisher_Publish(t *testing.T) {
	cfg, cleanup := setupTestRabbitMQ(t)
	defer cleanup()

	publisher, err := NewRabbitMQPublisher(cfg)
	require.NoError(t, err)
	defer publisher.Close()

	assert.True(t, publisher.IsHealthy())

	event := &EngagementEvent{
		Event:      EventClipLiked,
		ClipID:     "legacy-clip-1",
		Delta:      1,
		OccurredAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = publisher.Publish(ctx, event)
	require.NoError(t, err)

	// Consume the message back to verify routing and payload.
	connURL := "amqp://guest:guest@" + cfg.Host + ":" + strconv.Itoa(cfg.Port) + "/"
	conn, err := amqp.Dial(connURL)
	require.NoError(t, err)
	defer conn.Close()

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	msg, ok, err := ch.Get(cfg.Queue, true)
	require.NoError(t, err)
	require.True(t, ok, "expected a message on the queue")

	var received EngagementEvent
	require.NoError(t, json.Unmarshal(msg.Body, &received))
	assert.Equal(t, EventClipLiked, received.Event)
	assert.Equal(t, "legacy-clip-1", received.ClipID)
	assert.EqualValues(t, 1, received.Delta)
	assert.Equal(t, EventClipLiked, msg.Type)
}

func TestRabbitMQPublisher_CloseIsIdempotentEnough(t *testing.T) {
	cfg, cleanup := setupTestRabbitMQ(t)
	defer cleanup()

	publisher, err := NewRabbitMQPublisher(cfg)
	require.NoError(t, err)

	require.NoError(t, publisher.Close())
	assert.False(t, publisher.IsHealthy())
}
