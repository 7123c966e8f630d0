package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/core/ports"
)

type stubProcessor struct {
	mu        sync.Mutex
	processed []ports.Notification
	done      chan struct{}
}

func (s *stubProcessor) Process(_ context.Context, n ports.Notification) error {
	s.mu.Lock()
	s.processed = append(s.processed, n)
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
	return nil
}

func TestDispatcher_DeliversToWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := &stubProcessor{done: make(chan struct{}, 1)}
	d := NewDispatcher(2, stub, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.Notification{Kind: ports.NotifyOrder, CustomerEmail: "jean@example.com"})

	select {
	case <-stub.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("notification was never processed")
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.processed) != 1 || stub.processed[0].CustomerEmail != "jean@example.com" {
		t.Fatalf("unexpected deliveries: %+v", stub.processed)
	}
}

func TestDispatcher_SameRecipientSameShard(t *testing.T) {
	d := NewDispatcher(4, &stubProcessor{}, zerolog.Nop())

	first := d.shardIndex("jean@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("jean@example.com"); got != first {
			t.Fatalf("shard changed between calls: %d then %d", first, got)
		}
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// Workers are never started, so the single shard buffer fills up and
	// every further Enqueue must take the drop path instead of blocking.
	d := NewDispatcher(1, &stubProcessor{}, zerolog.Nop())

	for i := 0; i < channelBuffer+10; i++ {
		d.Enqueue(ports.Notification{Kind: ports.NotifyContact, CustomerEmail: "jean@example.com"})
	}

	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("buffered = %d, want %d", got, channelBuffer)
	}
}
