// Package memory provides an in-process implementation of the persistence layer.
// It backs the service when store.driver is "memory" and is used by tests.
package memory

import (
	"sync"
	"time"

	"nexus/internal/domain/entity"

	"github.com/google/uuid"
)

// tables is the mutable state guarded by Store.mu.
type tables struct {
	users       map[uuid.UUID]*entity.User
	emailIndex  map[string]uuid.UUID
	sessions    map[uuid.UUID]*entity.Session
	insertOrder map[uuid.UUID]uint64
	seq         uint64
}

func newTables() *tables {
	return &tables{
		users:       make(map[uuid.UUID]*entity.User),
		emailIndex:  make(map[string]uuid.UUID),
		sessions:    make(map[uuid.UUID]*entity.Session),
		insertOrder: make(map[uuid.UUID]uint64),
	}
}

func (t *tables) clone() *tables {
	cloned := &tables{
		users:       make(map[uuid.UUID]*entity.User, len(t.users)),
		emailIndex:  make(map[string]uuid.UUID, len(t.emailIndex)),
		sessions:    make(map[uuid.UUID]*entity.Session, len(t.sessions)),
		insertOrder: make(map[uuid.UUID]uint64, len(t.insertOrder)),
		seq:         t.seq,
	}
	for id, user := range t.users {
		cloned.users[id] = copyUser(user)
	}
	for email, id := range t.emailIndex {
		cloned.emailIndex[email] = id
	}
	for id, session := range t.sessions {
		cloned.sessions[id] = copySession(session)
	}
	for id, seq := range t.insertOrder {
		cloned.insertOrder[id] = seq
	}

	return cloned
}

// Store holds users and sessions in memory.
// Every read and write takes the store lock; a transaction holds it for its whole duration.
type Store struct {
	mu   sync.RWMutex
	data *tables
	now  func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		data: newTables(),
		now:  time.Now,
	}
}

// access runs fn against the store state, taking the lock unless the caller already holds it.
func (s *Store) access(locked, write bool, fn func(t *tables) error) error {
	if !locked {
		if write {
			s.mu.Lock()
			defer s.mu.Unlock()
		} else {
			s.mu.RLock()
			defer s.mu.RUnlock()
		}
	}

	return fn(s.data)
}

func copyUser(user *entity.User) *entity.User {
	if user == nil {
		return nil
	}
	cp := *user

	return &cp
}

func copySession(session *entity.Session) *entity.Session {
	if session == nil {
		return nil
	}
	cp := *session

	return &cp
}
