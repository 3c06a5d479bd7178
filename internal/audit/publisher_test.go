package audit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherWorkerRoundTrip(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	pub := NewPublisher(8, logger)
	sink := NewMemorySink()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = NewWorker(sink, pub.Inbox(), logger).Run(ctx)
	}()

	pub.Emit(ctx, Event{Type: EventOrderCreated, ActorID: "user-1"})
	pub.Emit(ctx, Event{Type: EventUserLogin, ActorID: "user-1"})

	require.Eventually(t, func() bool {
		return len(sink.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	events := sink.Events()
	assert.Equal(t, EventOrderCreated, events[0].Type)
	assert.NotZero(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisherDropsWhenBufferFull(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	pub := NewPublisher(1, logger)

	// No worker draining: second emit must not block.
	pub.Emit(context.Background(), Event{Type: EventUserLogin})
	done := make(chan struct{})
	go func() {
		pub.Emit(context.Background(), Event{Type: EventUserLogin})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full buffer")
	}
}
