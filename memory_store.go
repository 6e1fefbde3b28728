package dgpl

import (
	"context"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory [CredentialStore]. The
// uniqueness check and the insert run inside one critical section, so two
// racing registrations of the same username can never both observe
// "absent".
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]UserRecord
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]UserRecord)}
}

// Create inserts the record, or fails with [ErrAccountExists].
func (s *MemoryStore) Create(_ context.Context, input CreateUserInput) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[input.Username]; exists {
		return UserRecord{}, ErrAccountExists
	}

	rec := UserRecord{
		UserID:       input.UserID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
	}
	s.users[input.Username] = rec
	return rec, nil
}

// GetByUsername returns a copy of the record, or [ErrUserNotFound]. Reads
// may run concurrently with unrelated writes.
func (s *MemoryStore) GetByUsername(_ context.Context, username string) (UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[username]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return rec, nil
}
