package mq

import "context"

// Producer 生产者接口
type Producer interface {
	// Publish sends payload to topic. key orders messages within a partition; empty means any.
	Publish(ctx context.Context, topic string, key string, payload []byte) error
	Close() error
}

// NopProducer drops every message. Used when no queue is configured.
type NopProducer struct{}

func (NopProducer) Publish(context.Context, string, string, []byte) error { return nil }
func (NopProducer) Close() error                                         { return nil }
