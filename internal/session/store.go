package session

import "sync"

// Store keeps at most one live replication session per conversation key and
// hands out the per-key lock that serializes workflow steps on that key.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Replication
	keyLocks map[string]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Replication),
		keyLocks: make(map[string]*sync.Mutex),
	}
}

// Acquire locks the conversation key for one workflow step and returns the
// release function.
func (s *Store) Acquire(key string) func() {
	s.mu.Lock()
	l, ok := s.keyLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.keyLocks[key] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (s *Store) Get(key string) *Replication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[key]
}

// Put replaces any prior session under the key.
func (s *Store) Put(key string, r *Replication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = r
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}
