package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

type recordingAuditService struct {
	mu      sync.Mutex
	events  []ports.AuditEventInput
	ctxErrs []error
	done    chan struct{}
}

func (s *recordingAuditService) Process(ctx context.Context, input ports.AuditEventInput) error {
	s.mu.Lock()
	s.events = append(s.events, input)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
	return nil
}

func (s *recordingAuditService) RecentEvents(_ context.Context, _ int) ([]domain.AuditEvent, error) {
	return nil, nil
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := &recordingAuditService{done: make(chan struct{}, 4)}
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start()
	defer d.Stop(context.Background())

	d.Enqueue(ports.AuditEventInput{Actor: "alice", Action: "login"})
	d.Enqueue(ports.AuditEventInput{Actor: "bob", Action: "signup"})

	for i := 0; i < 2; i++ {
		select {
		case <-svc.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.events) != 2 {
		t.Fatalf("expected 2 processed events, got %d", len(svc.events))
	}
}

func TestDispatcher_SameActorSameWorker(t *testing.T) {
	d := NewDispatcher(4, &recordingAuditService{}, zerolog.Nop())

	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}

func TestDispatcher_StopDrainsBufferedEvents(t *testing.T) {
	svc := &recordingAuditService{}
	d := NewDispatcher(1, svc, zerolog.Nop())

	// Buffer events before any worker runs, so Stop has something to drain.
	for i := 0; i < 5; i++ {
		d.Enqueue(ports.AuditEventInput{Actor: "alice", Action: "login"})
	}
	d.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("stop did not drain in time: %v", err)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.events) != 5 {
		t.Fatalf("expected 5 drained events, got %d", len(svc.events))
	}
	// Accepted events must persist with a live context even during shutdown.
	for i, err := range svc.ctxErrs {
		if err != nil {
			t.Fatalf("event %d processed with dead context: %v", i, err)
		}
	}
}

func TestDispatcher_EnqueueAfterStopIsDropped(t *testing.T) {
	svc := &recordingAuditService{}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start()
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}

	// Must not panic on the closed channel, and must not deliver.
	d.Enqueue(ports.AuditEventInput{Actor: "alice", Action: "login"})

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.events) != 0 {
		t.Fatalf("event delivered after stop: %+v", svc.events)
	}
}

func TestDispatcher_StopTwiceIsSafe(t *testing.T) {
	d := NewDispatcher(2, &recordingAuditService{}, zerolog.Nop())
	d.Start()

	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("first stop failed: %v", err)
	}
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}
}
