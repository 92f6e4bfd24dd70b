package repository

import (
	"context"

	"caretrack/internal/domain"
)

// UserRepository defines user record operations
type UserRepository interface {
	// FetchOrCreate returns the user's record, creating an empty one on first access
	FetchOrCreate(ctx context.Context, userID int64) (*domain.User, error)
	// Upsert writes the full record
	Upsert(ctx context.Context, user *domain.User) error
	// ListPendingReminders returns users with medicines who have not confirmed day
	ListPendingReminders(ctx context.Context, day string) ([]int64, error)
}
