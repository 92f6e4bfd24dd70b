package service

import (
	"context"
	"time"

	"caretrack/internal/domain"
	"caretrack/internal/repository"
)

// ProgressService handles intake confirmations and streaks
type ProgressService struct {
	userRepo repository.UserRepository
	loc      *time.Location
	now      func() time.Time
}

// NewProgressService creates a progress service; days are computed in loc
func NewProgressService(userRepo repository.UserRepository, loc *time.Location) *ProgressService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressService{
		userRepo: userRepo,
		loc:      loc,
		now:      time.Now,
	}
}

// WithClock replaces the time source, for tests
func (s *ProgressService) WithClock(now func() time.Time) *ProgressService {
	s.now = now
	return s
}

// Today returns the current calendar day as YYYY-MM-DD
func (s *ProgressService) Today() string {
	return domain.DateKey(s.now(), s.loc)
}

// ConfirmToday records today's intake once
func (s *ProgressService) ConfirmToday(ctx context.Context, userID int64) (domain.ConfirmResult, error) {
	user, err := s.userRepo.FetchOrCreate(ctx, userID)
	if err != nil {
		return "", storeError("fetch user", userID, err)
	}

	result := user.ConfirmToday(s.Today())
	if result == domain.AlreadyConfirmed {
		return result, nil
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return "", storeError("save user", userID, err)
	}
	return result, nil
}

// Progress returns the streak ending today and the total confirmed days
func (s *ProgressService) Progress(ctx context.Context, userID int64) (domain.Progress, error) {
	user, err := s.userRepo.FetchOrCreate(ctx, userID)
	if err != nil {
		return domain.Progress{}, storeError("fetch user", userID, err)
	}
	return user.Progress(s.Today()), nil
}
