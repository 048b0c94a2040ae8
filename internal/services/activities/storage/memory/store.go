// Package memory provides a thread-safe in-memory activity store.
//
// State lives for the process lifetime only; every construction starts from
// the seed catalog passed to NewStore.
package memory

import (
	"context"
	"sync"

	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/domain"
)

// Store holds the activity catalog in memory behind a read-write mutex.
type Store struct {
	mu         sync.RWMutex
	activities []domain.Activity
}

// NewStore creates a store initialized with a copy of the seed catalog.
// Catalog order follows the seed order.
func NewStore(seed []domain.Activity) *Store {
	activities := make([]domain.Activity, 0, len(seed))
	for _, activity := range seed {
		activities = append(activities, copyActivity(activity))
	}
	return &Store{activities: activities}
}

// ListActivities returns a copy of the catalog in its canonical order.
func (s *Store) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	activities := make([]domain.Activity, 0, len(s.activities))
	for _, activity := range s.activities {
		activities = append(activities, copyActivity(activity))
	}
	return activities, nil
}

// AddParticipant appends email to the named activity's roster. Duplicates
// accumulate; capacity is not enforced.
func (s *Store) AddParticipant(ctx context.Context, activityName, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(activityName)
	if idx < 0 {
		return domain.ErrActivityNotFound
	}
	s.activities[idx].Participants = append(s.activities[idx].Participants, email)
	return nil
}

// RemoveParticipant removes the first roster occurrence of email from the
// named activity.
func (s *Store) RemoveParticipant(ctx context.Context, activityName, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(activityName)
	if idx < 0 {
		return domain.ErrActivityNotFound
	}
	participants := s.activities[idx].Participants
	for pos, participant := range participants {
		if participant == email {
			s.activities[idx].Participants = append(participants[:pos], participants[pos+1:]...)
			return nil
		}
	}
	return domain.ErrParticipantNotFound
}

// indexOf locates an activity by exact name. Callers must hold the lock.
func (s *Store) indexOf(activityName string) int {
	for idx := range s.activities {
		if s.activities[idx].Name == activityName {
			return idx
		}
	}
	return -1
}

// copyActivity clones an activity with its own roster slice. The clone is
// never nil so an empty roster still encodes as a JSON array.
func copyActivity(activity domain.Activity) domain.Activity {
	copied := activity
	copied.Participants = make([]string, len(activity.Participants))
	copy(copied.Participants, activity.Participants)
	return copied
}
