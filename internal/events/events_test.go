package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/bookstore/services/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUpdatedEventRoundTrip(t *testing.T) {
	event := NewCartUpdatedEvent("cart", 7)

	_, err := uuid.Parse(event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, EventTypeCartUpdated, event.EventType)

	body, err := json.Marshal(event)
	require.NoError(t, err)

	data, err := DecodeCartUpdated(body)
	require.NoError(t, err)
	assert.Equal(t, CartUpdatedData{Key: "cart", TotalItems: 7}, data)
}

func TestDecodeCartUpdatedRejectsOtherEvents(t *testing.T) {
	_, err := DecodeCartUpdated([]byte(`{"event_type":"catalog.created","payload":{}}`))
	assert.Error(t, err)

	_, err = DecodeCartUpdated([]byte(`not json`))
	assert.Error(t, err)
}

func TestPublishSubscribe(t *testing.T) {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		t.Skip("RABBITMQ_URL not set, skipping integration test")
	}
	log := logger.NewLogger("test", "info")

	sub, err := NewSubscriber(url, "test-badge", log)
	require.NoError(t, err)
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	received := make(chan CartUpdatedData, 1)
	go sub.Run(ctx, func(_ context.Context, data CartUpdatedData) {
		received <- data
	})
	// give the queue time to bind
	time.Sleep(200 * time.Millisecond)

	pub, err := NewPublisher(url, log)
	require.NoError(t, err)
	defer pub.Close()
	assert.True(t, pub.IsHealthy())

	require.NoError(t, pub.CartUpdated(ctx, "cart", 3))

	select {
	case data := <-received:
		assert.Equal(t, "cart", data.Key)
		assert.Equal(t, 3, data.TotalItems)
	case <-ctx.Done():
		t.Fatal("timed out waiting for cart.updated")
	}
}
