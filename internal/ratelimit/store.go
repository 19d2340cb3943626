package ratelimit

import "time"

// Entry состояние окна одного клиента
type Entry struct {
	Count   int
	ResetAt time.Time
}

// MemoryStore хранилище в памяти процесса
type MemoryStore struct {
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Get(key string) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

func (s *MemoryStore) Set(key string, entry Entry) {
	s.entries[key] = entry
}

func (s *MemoryStore) Delete(key string) {
	delete(s.entries, key)
}

func (s *MemoryStore) Range(fn func(key string, entry Entry) bool) {
	for k, e := range s.entries {
		if !fn(k, e) {
			return
		}
	}
}

func (s *MemoryStore) Len() int {
	return len(s.entries)
}
