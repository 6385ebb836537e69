package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/application/allocation"

	"github.com/segmentio/kafka-go"
)

const (
	defaultMaxAttempts  = 3
	defaultWriteTimeout = 10 * time.Second
)

var (
	ErrBrokersAreRequired = errors.New("kafka: at least one broker required")
	ErrTopicIsRequired    = errors.New("kafka: topic required")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers []string
	Topic   string
	// MaxAttempts defaults to 3.
	MaxAttempts int
	// WriteTimeout defaults to 10s.
	WriteTimeout time.Duration
}

// SummaryPublisher emits one JSON message per allocation run, keyed by run id.
type SummaryPublisher struct {
	writer      messageWriter
	maxAttempts int
	backoff     time.Duration
}

func NewSummaryPublisher(cfg Config) (*SummaryPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrBrokersAreRequired
	}
	if cfg.Topic == "" {
		return nil, ErrTopicIsRequired
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireAll,
	}

	return newSummaryPublisher(w, cfg.MaxAttempts), nil
}

func newSummaryPublisher(w messageWriter, maxAttempts int) *SummaryPublisher {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &SummaryPublisher{
		writer:      w,
		maxAttempts: maxAttempts,
		backoff:     100 * time.Millisecond,
	}
}

// Publish retries transient write failures with exponential backoff until ctx expires.
func (p *SummaryPublisher) Publish(ctx context.Context, summary allocation.Summary) error {
	value, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal allocation summary: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(summary.RunID),
		Value: value,
		Time:  summary.FinishedAt,
		Headers: []kafka.Header{
			{Key: "trigger", Value: []byte(summary.Trigger)},
		},
	}

	backoff := p.backoff
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if lastErr = p.writer.WriteMessages(ctx, msg); lastErr == nil {
			return nil
		}
		if attempt == p.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("publish allocation summary %s: %w", summary.RunID, errors.Join(lastErr, ctx.Err()))
		case <-time.After(backoff):
		}
		if backoff < 2*time.Second {
			backoff *= 2
		}
	}

	return fmt.Errorf("publish allocation summary %s after %d attempts: %w", summary.RunID, p.maxAttempts, lastErr)
}

func (p *SummaryPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
