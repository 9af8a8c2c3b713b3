package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/markaai/booking-gateway/internal/core/domain"
)

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func newStubRecorder(want int) *stubRecorder {
	return &stubRecorder{done: make(chan struct{}), want: want}
}

func (r *stubRecorder) Record(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func TestDispatcher_RecordsEvents(t *testing.T) {
	recorder := newStubRecorder(3)
	d := NewDispatcher(2, recorder, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.AuditEvent{SessionID: "s1", Action: domain.AuditLogin})
	d.Enqueue(domain.AuditEvent{SessionID: "s2", Action: domain.AuditLogin})
	d.Enqueue(domain.AuditEvent{SessionID: "s1", Action: domain.AuditLogout})

	select {
	case <-recorder.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not recorded in time")
	}
}

func TestDispatcher_PerSessionOrdering(t *testing.T) {
	const n = 20
	recorder := newStubRecorder(n)
	d := NewDispatcher(4, recorder, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []domain.AuditAction{domain.AuditLogin, domain.AuditWorkspaceSwitch, domain.AuditLogout}
	for i := 0; i < n; i++ {
		d.Enqueue(domain.AuditEvent{
			SessionID: "same-session",
			Action:    actions[i%len(actions)],
			Timestamp: time.Unix(int64(i), 0),
		})
	}

	select {
	case <-recorder.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not recorded in time")
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	for i := 1; i < len(recorder.events); i++ {
		if recorder.events[i].Timestamp.Before(recorder.events[i-1].Timestamp) {
			t.Fatalf("per-session ordering violated at index %d", i)
		}
	}
}

func TestDispatcher_ShardIsStablePerSession(t *testing.T) {
	d := NewDispatcher(8, newStubRecorder(0), zerolog.Nop())

	first := d.shardIndex("session-abc")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("session-abc"); got != first {
			t.Fatalf("shard index not deterministic: %d != %d", got, first)
		}
	}
}
