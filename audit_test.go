package dgpl

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

// blockingSink parks in Emit until released, used to fill the dispatch
// buffer deterministically.
type blockingSink struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingSink() *blockingSink {
	return &blockingSink{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (s *blockingSink) Emit(context.Context, AuditEvent) {
	s.started <- struct{}{}
	<-s.release
}

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	sink := NewChannelSink(16)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8, DropIfFull: true}, sink)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		d.Emit(ctx, AuditEvent{EventType: "login_success", Timestamp: time.Now()})
	}
	d.Close()

	var delivered int
drain:
	for {
		select {
		case <-sink.Events():
			delivered++
		default:
			break drain
		}
	}
	if delivered != 5 {
		t.Fatalf("delivered = %d, want 5", delivered)
	}
	if d.Dropped() != 0 {
		t.Fatalf("dropped = %d, want 0", d.Dropped())
	}
}

func TestDispatcherDropsWhenBufferFull(t *testing.T) {
	sink := newBlockingSink()
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	ctx := context.Background()

	// First event: wait until the dispatcher goroutine has taken it off
	// the channel and parked inside the sink.
	d.Emit(ctx, AuditEvent{EventType: "first"})
	<-sink.started

	// Second event fills the single buffer slot, third has nowhere to go.
	d.Emit(ctx, AuditEvent{EventType: "second"})
	d.Emit(ctx, AuditEvent{EventType: "third"})

	if got := d.Dropped(); got != 1 {
		t.Fatalf("dropped = %d, want 1", got)
	}

	close(sink.release)
	d.Close()
}

func TestDispatcherIgnoresEmitAfterClose(t *testing.T) {
	sink := NewChannelSink(4)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 4, DropIfFull: true}, sink)
	d.Close()

	d.Emit(context.Background(), AuditEvent{EventType: "late"})

	select {
	case ev := <-sink.Events():
		t.Fatalf("unexpected event after close: %+v", ev)
	default:
	}
	if d.Dropped() != 0 {
		t.Fatalf("dropped = %d, want 0", d.Dropped())
	}
}

func TestDisabledDispatcherIsInert(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, nil)
	if d != nil {
		t.Fatal("expected nil dispatcher when auditing is disabled")
	}

	// All methods must be safe on the nil dispatcher.
	d.Emit(context.Background(), AuditEvent{EventType: "x"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: "account_created",
		Username:  "alice",
		Success:   true,
		Metadata:  map[string]string{"role": "user"},
	})
	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: "login_failure",
		Username:  "alice",
		Error:     "invalid credentials",
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	var first AuditEvent
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if first.EventType != "account_created" || first.Username != "alice" || !first.Success {
		t.Fatalf("unexpected first event: %+v", first)
	}
	if first.Metadata["role"] != "user" {
		t.Fatalf("metadata = %v", first.Metadata)
	}

	var second AuditEvent
	if err := json.Unmarshal(lines[1], &second); err != nil {
		t.Fatalf("unmarshal second line: %v", err)
	}
	if second.EventType != "login_failure" || second.Error != "invalid credentials" {
		t.Fatalf("unexpected second event: %+v", second)
	}
}
