package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"logistics/internal/core/application/allocation"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	failures int
	err      error
	messages []kafka.Message
	calls    int
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.calls++
	if w.calls <= w.failures {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testSummary() allocation.Summary {
	return allocation.Summary{
		RunID:              "3f1c7a52-6d0e-4c55-9a3b-4c1f0e2b7d11",
		Trigger:            allocation.TriggerScheduled,
		Message:            "Order allocation completed",
		FinishedAt:         time.Date(2026, 10, 19, 7, 0, 3, 0, time.UTC),
		AssignmentsCreated: 2,
		TotalCost:          4.25,
		DeferredOrders:     1,
	}
}

func Test_NewSummaryPublisher_Validation(t *testing.T) {
	_, err := NewSummaryPublisher(Config{Topic: "allocations"})
	assert.ErrorIs(t, err, ErrBrokersAreRequired)

	_, err = NewSummaryPublisher(Config{Brokers: []string{"localhost:9092"}})
	assert.ErrorIs(t, err, ErrTopicIsRequired)

	p, err := NewSummaryPublisher(Config{Brokers: []string{"localhost:9092"}, Topic: "allocations"})
	require.NoError(t, err)
	assert.Equal(t, defaultMaxAttempts, p.maxAttempts)
	assert.NoError(t, p.Close())
}

func Test_SummaryPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newSummaryPublisher(w, 3)
	summary := testSummary()

	require.NoError(t, p.Publish(context.Background(), summary))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, []byte(summary.RunID), msg.Key)
	assert.Equal(t, summary.FinishedAt, msg.Time)
	assert.Equal(t, []kafka.Header{{Key: "trigger", Value: []byte("scheduled")}}, msg.Headers)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "Order allocation completed", decoded["message"])
	assert.EqualValues(t, 2, decoded["assignments_created"])
	assert.EqualValues(t, 4.25, decoded["total_cost"])
	assert.EqualValues(t, 1, decoded["deferred_orders"])
}

func Test_SummaryPublisher_RetriesTransientFailures(t *testing.T) {
	w := &fakeWriter{failures: 2, err: errors.New("leader not available")}
	p := newSummaryPublisher(w, 3)
	p.backoff = time.Millisecond

	require.NoError(t, p.Publish(context.Background(), testSummary()))
	assert.Equal(t, 3, w.calls)
	assert.Len(t, w.messages, 1)
}

func Test_SummaryPublisher_GivesUpAfterMaxAttempts(t *testing.T) {
	brokerErr := errors.New("broker unreachable")
	w := &fakeWriter{failures: 10, err: brokerErr}
	p := newSummaryPublisher(w, 2)
	p.backoff = time.Millisecond

	err := p.Publish(context.Background(), testSummary())

	assert.ErrorIs(t, err, brokerErr)
	assert.Equal(t, 2, w.calls)
}

func Test_SummaryPublisher_StopsOnCancelledContext(t *testing.T) {
	w := &fakeWriter{failures: 10, err: errors.New("broker unreachable")}
	p := newSummaryPublisher(w, 5)
	p.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Publish(ctx, testSummary())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, w.calls)
}

func Test_SummaryPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, newSummaryPublisher(w, 1).Close())
	assert.True(t, w.closed)

	var nilPublisher *SummaryPublisher
	assert.NoError(t, nilPublisher.Close())
}
