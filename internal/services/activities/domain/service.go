package domain

import (
	"context"
	"errors"
	"fmt"
)

// Registry lookup failures. Activity names are matched exactly; no
// normalization is applied before lookup.
var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrParticipantNotFound = errors.New("participant not found")
)

// Store persists the activity catalog and rosters.
//
// Implementations return ErrActivityNotFound when activityName does not match
// a catalog entry and ErrParticipantNotFound when a removal targets an email
// absent from the roster.
type Store interface {
	// ListActivities returns the full catalog in its canonical order.
	ListActivities(ctx context.Context) ([]Activity, error)
	// AddParticipant appends email to the named activity's roster. Appending
	// is unconditional: duplicates accumulate and capacity is not enforced.
	AddParticipant(ctx context.Context, activityName, email string) error
	// RemoveParticipant removes the first roster occurrence of email from the
	// named activity.
	RemoveParticipant(ctx context.Context, activityName, email string) error
}

// Service exposes registry operations backed by a Store.
type Service struct {
	store Store
}

// NewService creates a registry service over the provided store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListActivities returns every activity with its current roster.
func (s *Service) ListActivities(ctx context.Context) ([]Activity, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("activity store is not configured")
	}
	return s.store.ListActivities(ctx)
}

// SignUp enrolls email in the named activity.
//
// Email values are opaque: no format validation, no deduplication. Signing
// up twice yields two roster entries.
func (s *Service) SignUp(ctx context.Context, activityName, email string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("activity store is not configured")
	}
	return s.store.AddParticipant(ctx, activityName, email)
}

// Unregister removes one occurrence of email from the named activity.
// Remaining duplicate entries stay enrolled.
func (s *Service) Unregister(ctx context.Context, activityName, email string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("activity store is not configured")
	}
	return s.store.RemoveParticipant(ctx, activityName, email)
}
