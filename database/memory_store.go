package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

type memoryEntry struct {
	seq int64
	doc models.Document
}

// MemoryStore keeps documents in process memory. It backs tests and DB_TYPE=memory.
type MemoryStore struct {
	mu          sync.RWMutex
	seq         int64
	collections map[string][]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]*memoryEntry)}
}

func (m *MemoryStore) FindByKey(_ context.Context, collection, key string) (models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e := m.findLocked(collection, models.FieldKey, key); e != nil {
		return e.doc.Clone(), nil
	}
	return nil, nil
}

func (m *MemoryStore) ReplaceByKey(_ context.Context, collection, key string, doc models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := bodyOf(doc)
	next[models.FieldKey] = key
	next[models.FieldLastModified] = doc.Time(models.FieldLastModified)

	if e := m.findLocked(collection, models.FieldKey, key); e != nil {
		next[models.FieldID] = e.doc.ID()
		next[models.FieldCreatedAt] = e.doc.Time(models.FieldCreatedAt)
		e.doc = next
		return nil
	}

	next[models.FieldID] = uuid.NewString()
	next[models.FieldCreatedAt] = doc.Time(models.FieldLastModified)
	m.appendLocked(collection, next)
	return nil
}

func (m *MemoryStore) FindAll(_ context.Context, collection, sortField string) ([]models.Document, error) {
	// Snapshot under the lock; writers mutate entry documents in place.
	m.mu.RLock()
	entries := make([]memoryEntry, 0, len(m.collections[collection]))
	for _, e := range m.collections[collection] {
		entries = append(entries, memoryEntry{seq: e.seq, doc: e.doc.Clone()})
	}
	m.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].doc.Time(sortField), entries[j].doc.Time(sortField)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})

	out := make([]models.Document, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.doc)
	}
	return out, nil
}

func (m *MemoryStore) Insert(_ context.Context, collection string, doc models.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	next := bodyOf(doc)
	next[models.FieldID] = id
	next[models.FieldCreatedAt] = timeOr(doc.Time(models.FieldCreatedAt), time.Now())
	next[models.FieldLastModified] = timeOr(doc.Time(models.FieldLastModified), time.Now())
	m.appendLocked(collection, next)
	return id, nil
}

func (m *MemoryStore) MergeByID(_ context.Context, collection, id string, patch models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.findLocked(collection, models.FieldID, id)
	if e == nil {
		return errs.NewEntryNotFound(collection, id)
	}
	for k, v := range bodyOf(patch) {
		e.doc[k] = v
	}
	if lm := patch.Time(models.FieldLastModified); !lm.IsZero() {
		e.doc[models.FieldLastModified] = lm
	}
	return nil
}

func (m *MemoryStore) DeleteByID(_ context.Context, collection, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.collections[collection]
	for i, e := range entries {
		if e.doc.ID() == id {
			m.collections[collection] = append(entries[:i], entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close(context.Context) error { return nil }

func (m *MemoryStore) findLocked(collection, field, value string) *memoryEntry {
	for _, e := range m.collections[collection] {
		if v, _ := e.doc[field].(string); v == value {
			return e
		}
	}
	return nil
}

func (m *MemoryStore) appendLocked(collection string, doc models.Document) {
	m.seq++
	m.collections[collection] = append(m.collections[collection], &memoryEntry{seq: m.seq, doc: doc})
}

func timeOr(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}
