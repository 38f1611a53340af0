package worker

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"budget/internal/events"
	"budget/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{
		Handler: slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}),
	})
}

func message(event, user, id, amount string) *events.LedgerEventMessage {
	return &events.LedgerEventMessage{
		Event:         event,
		User:          user,
		TransactionID: id,
		Amount:        amount,
		Timestamp:     time.Now().UTC(),
	}
}

func TestAuditWorker_HandleEvent(t *testing.T) {
	w := NewAuditWorker(testLogger())

	steps := []*events.LedgerEventMessage{
		message(events.EventTransactionRecorded, "alice", "a1", "10"),
		message(events.EventTransactionRecorded, "alice", "a2", "-3.5"),
		message(events.EventTransactionDeleted, "alice", "a1", "10"),
		message(events.EventTransactionRecorded, "bob", "b1", "7"),
	}
	for i, msg := range steps {
		if err := w.HandleEvent(msg); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	recorded, deleted, net := w.Activity("alice")
	if recorded != 2 || deleted != 1 {
		t.Fatalf("alice counters = %d recorded, %d deleted", recorded, deleted)
	}
	if net.String() != "-3.5" {
		t.Fatalf("alice net = %s, want -3.5", net.String())
	}

	recorded, deleted, net = w.Activity("bob")
	if recorded != 1 || deleted != 0 || net.String() != "7" {
		t.Fatalf("bob activity = %d/%d/%s", recorded, deleted, net.String())
	}

	recorded, deleted, net = w.Activity("nobody")
	if recorded != 0 || deleted != 0 || !net.IsZero() {
		t.Fatalf("unknown user activity = %d/%d/%s", recorded, deleted, net.String())
	}
}

func TestAuditWorker_HandleEventErrors(t *testing.T) {
	w := NewAuditWorker(testLogger())

	if err := w.HandleEvent(message("transaction:mystery", "alice", "a1", "5")); err == nil {
		t.Fatal("expected error for unknown event type")
	}
	if err := w.HandleEvent(message(events.EventTransactionRecorded, "alice", "a1", "not-a-number")); err == nil {
		t.Fatal("expected error for bad amount")
	}

	if recorded, deleted, _ := w.Activity("alice"); recorded != 0 || deleted != 0 {
		t.Fatalf("failed events must not count, got %d/%d", recorded, deleted)
	}
}
