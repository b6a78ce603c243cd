package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/config"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func testProducer(w MessageWriter) *Producer {
	return &Producer{
		Writer: w,
		Topics: config.TopicConfig{Venues: "t.venues", Artists: "t.artists", Shows: "t.shows"},
		Logger: logger.New(io.Discard),
	}
}

func TestPublishListingRoutesByEntity(t *testing.T) {
	w := &recordingWriter{}
	p := testProducer(w)
	at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, p.PublishListing(context.Background(), models.NewListingEvent("venue", models.ListingCreated, 12, "The Blue Note", at)))
	require.NoError(t, p.PublishListing(context.Background(), models.NewListingEvent("show", models.ListingCreated, 3, "", at)))

	require.Len(t, w.messages, 2)
	assert.Equal(t, "t.venues", w.messages[0].Topic)
	assert.Equal(t, []byte("12"), w.messages[0].Key)
	assert.Equal(t, "t.shows", w.messages[1].Topic)

	var evt models.ListingEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &evt))
	assert.Equal(t, "venue.created", evt.Type)
	assert.Equal(t, "The Blue Note", evt.Name)
	assert.True(t, at.Equal(evt.OccurredAt))
}

func TestPublishListingUnknownEntity(t *testing.T) {
	w := &recordingWriter{}
	err := testProducer(w).PublishListing(context.Background(), models.ListingEvent{Entity: "ticket"})

	assert.Error(t, err)
	assert.Empty(t, w.messages)
}

func TestPublishListingWriterError(t *testing.T) {
	boom := errors.New("broker down")
	err := testProducer(&recordingWriter{err: boom}).PublishListing(context.Background(),
		models.NewListingEvent("artist", models.ListingDeleted, 1, "Alice", time.Now()))

	assert.ErrorIs(t, err, boom)
}

func TestTopicNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, TopicNames(config.TopicConfig{Venues: "a", Artists: "b", Shows: "c"}))
}
