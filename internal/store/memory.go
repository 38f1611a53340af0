package store

import (
	"context"
	"sync"

	"budget/internal/core"
)

// Memory keeps account records in a process-wide map. No persistence;
// lifetime equals process lifetime. The mutex only guards the map against
// the HTTP server's concurrent handlers, it does not promise cross-request
// transactionality.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]core.Account
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]core.Account)}
}

// Get implements Store. The returned account is a deep copy.
func (s *Memory) Get(_ context.Context, user string) (core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[user]
	if !ok {
		return core.Account{}, core.ErrUserNotFound
	}
	return account.Clone(), nil
}

// Put implements Store. The stored record is a copy of the argument.
func (s *Memory) Put(_ context.Context, account core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.User] = account.Clone()
	return nil
}

// Delete implements Store.
func (s *Memory) Delete(_ context.Context, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[user]; !ok {
		return core.ErrUserNotFound
	}
	delete(s.accounts, user)
	return nil
}

// Len reports the number of stored accounts.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
