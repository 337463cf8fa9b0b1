package health

import "sync"

type snapshotStore struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

type ISnapshotStore interface {
	Set(snapshot Snapshot)
	Current() Snapshot
}

func NewSnapshotStore() ISnapshotStore {
	return &snapshotStore{}
}

func (s *snapshotStore) Set(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

func (s *snapshotStore) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
