package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"

	"fyyur/internal/config"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	Writer MessageWriter
	Topics config.TopicConfig
	Logger *logger.Logger
}

func NewProducer(brokers []string, topics config.TopicConfig, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{Writer: writer, Topics: topics, Logger: log}
}

// TopicFor maps an entity name to its topic.
func (p *Producer) TopicFor(entity string) (string, error) {
	switch entity {
	case "venue":
		return p.Topics.Venues, nil
	case "artist":
		return p.Topics.Artists, nil
	case "show":
		return p.Topics.Shows, nil
	}
	return "", fmt.Errorf("no topic for entity %q", entity)
}

// PublishListing streams a committed listing change, keyed by entity id.
func (p *Producer) PublishListing(ctx context.Context, evt models.ListingEvent) error {
	topic, err := p.TopicFor(evt.Entity)
	if err != nil {
		return err
	}

	msgBytes, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	p.Logger.LogKafka("PUBLISH", topic, string(msgBytes))

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(evt.ID, 10)),
		Value: msgBytes,
	})
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
