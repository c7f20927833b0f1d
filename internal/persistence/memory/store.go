// Package memory provides an in-process activity store for tests and local development.
package memory

import (
	"context"
	"sync"

	"github.com/erikadonato/to-do-list/internal/domain"
)

// Store keeps activities in a map guarded by a RWMutex. IDs come from a counter that is
// never rewound, so a deleted id is not handed out again.
type Store struct {
	mu         sync.RWMutex
	lastID     int64
	activities map[int64]domain.Activity
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{activities: make(map[int64]domain.Activity)}
}

// FindByID implements domain.ActivityRepository.
func (s *Store) FindByID(ctx context.Context, id int64) (*domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activity, ok := s.activities[id]
	if !ok {
		return nil, nil
	}
	return &activity, nil
}

// Create implements domain.ActivityRepository.
func (s *Store) Create(ctx context.Context, fields domain.NewActivity) (*domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	activity := domain.Activity{
		ID:       s.lastID,
		Title:    fields.Title,
		Subtitle: fields.Subtitle,
		Pending:  fields.Pending,
	}
	s.activities[activity.ID] = activity
	return &activity, nil
}

// Update implements domain.ActivityRepository. Updating a missing id is a no-op.
func (s *Store) Update(ctx context.Context, id int64, patch domain.ActivityPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[id]
	if !ok {
		return nil
	}
	s.activities[id] = patch.Apply(activity)
	return nil
}

// Remove implements domain.ActivityRepository.
func (s *Store) Remove(ctx context.Context, activity domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.activities, activity.ID)
	return nil
}

// Len returns the number of stored activities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// Migrate is a no-op; the map needs no schema.
func (s *Store) Migrate(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
