package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IBM/sarama"
)

// Handler processes one decoded message for a topic.
type Handler interface {
	Handle(ctx context.Context, msg *sarama.ConsumerMessage) error
}

// JSONHandler adapts a typed function into a raw message handler. It
// unmarshals msg.Value into T and calls HandleFunc(ctx, T).
type JSONHandler[T any] struct {
	HandleFunc func(ctx context.Context, msg T) error
}

func (h JSONHandler[T]) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var v T
	if err := json.Unmarshal(msg.Value, &v); err != nil {
		return err
	}
	return h.HandleFunc(ctx, v)
}

// Consumer runs a consumer group over a set of topics, one handler per
// topic. Claims are processed sequentially per partition, so messages
// keyed by aggregate id are handled in order.
type Consumer struct {
	group    sarama.ConsumerGroup
	handlers map[string]Handler
	log      *slog.Logger
}

func NewConsumer(group sarama.ConsumerGroup, log *slog.Logger) *Consumer {
	return &Consumer{group: group, handlers: make(map[string]Handler), log: log}
}

// Register associates a topic with a handler. Call before Start.
func (c *Consumer) Register(topic string, h Handler) {
	c.handlers[topic] = h
}

// Start blocks until ctx is cancelled or the group fails.
func (c *Consumer) Start(ctx context.Context) error {
	topics := make([]string, 0, len(c.handlers))
	for t := range c.handlers {
		topics = append(topics, t)
	}

	handler := &cgHandler{handlers: c.handlers, log: c.log}
	for {
		if err := c.group.Consume(ctx, topics, handler); err != nil {
			return err
		}
		// Consume returns on rebalance; loop unless the ctx is done.
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

type cgHandler struct {
	handlers map[string]Handler
	log      *slog.Logger
}

func (h *cgHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *cgHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim drains one partition. A handler error is logged and the
// message is still marked: delivery is at-least-once with no dead-letter
// topic, so a failed notification is dropped rather than replayed forever.
func (h *cgHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		handler, ok := h.handlers[msg.Topic]
		if !ok {
			sess.MarkMessage(msg, "")
			continue
		}

		if err := handler.Handle(sess.Context(), msg); err != nil {
			h.log.Error("event handler failed",
				"topic", msg.Topic, "key", string(msg.Key),
				"partition", msg.Partition, "offset", msg.Offset, "error", err)
			eventsFailed.WithLabelValues(msg.Topic).Inc()
			sess.MarkMessage(msg, "handler-error")
			continue
		}

		eventsProcessed.WithLabelValues(msg.Topic).Inc()
		sess.MarkMessage(msg, "")
	}
	return nil
}
