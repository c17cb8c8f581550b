package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink streams audit events as JSON records keyed by action.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects a producer that writes to topic.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

// EnsureTopic creates the audit topic with the broker's default replication
// when it does not exist yet.
func (k *KafkaSink) EnsureTopic(ctx context.Context, partitions int32) error {
	resp, err := kadm.NewClient(k.client).CreateTopic(ctx, partitions, -1, nil, k.topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic %s: %w", k.topic, resp.Err)
	}
	return nil
}

func (k *KafkaSink) Publish(ctx context.Context, event Event) error {
	payload, err := encodeRecord(event)
	if err != nil {
		return err
	}
	record := &kgo.Record{Key: []byte(event.Action), Value: payload}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Ping checks broker reachability.
func (k *KafkaSink) Ping(ctx context.Context) error {
	return k.client.Ping(ctx)
}

func (k *KafkaSink) Close() {
	k.client.Close()
}

func encodeRecord(event Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode audit event: %w", err)
	}
	return payload, nil
}
