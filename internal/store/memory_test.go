package store

import (
	"context"
	"errors"
	"testing"

	"budget/internal/core"
)

func TestMemoryGetUnknownUser(t *testing.T) {
	s := NewMemory()
	for _, user := range []string{"alice", "", "no such user", "../etc"} {
		if _, err := s.Get(context.Background(), user); !errors.Is(err, core.ErrUserNotFound) {
			t.Fatalf("Get(%q) = %v, want ErrUserNotFound", user, err)
		}
	}
}

func TestMemoryPutGetDelete(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Put(ctx, core.NewAccount("alice", "USD", "", core.Zero())); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.User != "alice" || got.Currency != "USD" {
		t.Fatalf("unexpected account: %+v", got)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}

	if err := s.Delete(ctx, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "alice"); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "alice"); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestMemoryHandsOutCopies(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	account := core.NewAccount("alice", "USD", "", core.Zero())
	amount, _ := core.MoneyFromString("5")
	if err := account.AddTransaction(core.NewTransaction("2024-01-01", "coffee", amount)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Put(ctx, account); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Mutating the original after Put must not touch the stored record.
	account.Transactions[0].Object = "mutated"

	got, err := s.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Transactions[0].Object != "coffee" {
		t.Fatalf("stored record aliased caller slice: %q", got.Transactions[0].Object)
	}

	// Mutating a fetched copy must not touch the stored record either.
	got.Transactions[0].Object = "mutated"
	again, _ := s.Get(ctx, "alice")
	if again.Transactions[0].Object != "coffee" {
		t.Fatalf("fetched record aliased store: %q", again.Transactions[0].Object)
	}
}

func TestMemoryPutReplaces(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_ = s.Put(ctx, core.NewAccount("alice", "USD", "", core.Zero()))
	_ = s.Put(ctx, core.NewAccount("alice", "EUR", "second", core.Zero()))

	got, err := s.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Currency != "EUR" || got.Description != "second" {
		t.Fatalf("put did not replace: %+v", got)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}
