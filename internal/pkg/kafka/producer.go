package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	SendMessage(ctx context.Context, key string, message interface{}) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer connects to the first reachable broker and makes sure the
// topic exists. Without a broker it returns a producer that only logs.
func NewProducer(brokers []string, topic string) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logrus.Infof("Kafka producer configured for brokers: %v", brokers)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var conn *kafka.Conn
	var err error
	for _, broker := range brokers {
		conn, err = kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			break
		}
	}
	if conn == nil {
		logrus.Warnf("Kafka connection failed: %v", err)
		logrus.Warn("Using mock producer instead")
		return &mockProducer{topic: topic}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.Infof("Could not create topic (might already exist): %v", err)
	} else {
		logrus.Infof("Created topic: %s", topic)
	}

	return &kafkaProducer{writer: writer, topic: topic}
}

func (p *kafkaProducer) SendMessage(ctx context.Context, key string, message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: messageBytes,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logrus.Errorf("Failed to write message to Kafka: %v", err)
		return err
	}

	logrus.WithField("key", key).Infof("Message sent to topic: %s", p.topic)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// mockProducer keeps the API usable without a broker.
type mockProducer struct {
	topic string
}

func (m *mockProducer) SendMessage(ctx context.Context, key string, message interface{}) error {
	logrus.WithField("key", key).Infof("MOCK: message to topic %s: %+v", m.topic, message)
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}
