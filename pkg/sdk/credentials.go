package sdk

import "sync"

// Stable storage keys for the persisted session. KeyUser and KeyToken are
// always written and cleared together.
const (
	KeyUser  = "crm_user"
	KeyToken = "auth_token"

	// Identity fields mirrored for tools that read them without decoding
	// the user snapshot.
	KeyUserRole  = "user_role"
	KeyUserEmail = "user_email"
	KeyUserName  = "user_name"
)

// sessionKeys lists every key owned by the session client.
var sessionKeys = []string{KeyUser, KeyToken, KeyUserRole, KeyUserEmail, KeyUserName}

// TokenStore persists session credentials as string key/value pairs.
// Missing keys are not errors; Get reports them with ok == false.
type TokenStore interface {
	Put(key, value string) error
	Get(key string) (string, bool)
	Remove(key string) error
	Clear() error
}

// MemoryStore is a TokenStore that keeps entries in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ TokenStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (s *MemoryStore) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]string)
	return nil
}

// Len reports the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
