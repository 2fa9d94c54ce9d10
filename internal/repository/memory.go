package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sumire/bugs/internal/domain"
)

type memoryEntry struct {
	bug domain.Bug
	seq uint64
}

// MemoryBugRepository keeps bugs in process memory. Contents are lost on
// restart.
type MemoryBugRepository struct {
	mu   sync.RWMutex
	bugs map[string]memoryEntry
	seq  uint64
	now  func() time.Time
}

// NewMemoryBugRepository creates an empty MemoryBugRepository.
func NewMemoryBugRepository() *MemoryBugRepository {
	return &MemoryBugRepository{
		bugs: make(map[string]memoryEntry),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for timestamps.
func (r *MemoryBugRepository) WithClock(now func() time.Time) *MemoryBugRepository {
	r.now = now
	return r
}

// List returns every bug, newest first. Bugs created at the same instant
// are ordered by insertion, latest first.
func (r *MemoryBugRepository) List(_ context.Context) ([]domain.Bug, error) {
	r.mu.RLock()
	entries := make([]memoryEntry, 0, len(r.bugs))
	for _, e := range r.bugs {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b memoryEntry) int {
		if c := b.bug.CreatedAt.Compare(a.bug.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.seq > b.seq:
			return -1
		case a.seq < b.seq:
			return 1
		}
		return 0
	})

	bugs := make([]domain.Bug, len(entries))
	for i, e := range entries {
		bugs[i] = e.bug
	}
	return bugs, nil
}

// FindByID retrieves a bug by its ID.
func (r *MemoryBugRepository) FindByID(_ context.Context, id string) (*domain.Bug, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.bugs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	bug := e.bug
	return &bug, nil
}

// Create stores bug under a freshly generated ID.
func (r *MemoryBugRepository) Create(_ context.Context, bug domain.Bug) (*domain.Bug, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bug.ID = uuid.NewString()
	bug.CreatedAt = now
	bug.UpdatedAt = now

	r.seq++
	r.bugs[bug.ID] = memoryEntry{bug: bug, seq: r.seq}
	return &bug, nil
}

// Update overwrites the fields present in p and refreshes UpdatedAt.
func (r *MemoryBugRepository) Update(_ context.Context, id string, p domain.BugPayload) (*domain.Bug, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.bugs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.bug = e.bug.Apply(p)
	e.bug.UpdatedAt = r.now()
	r.bugs[id] = e

	bug := e.bug
	return &bug, nil
}

// Delete removes a bug permanently.
func (r *MemoryBugRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bugs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.bugs, id)
	return nil
}
