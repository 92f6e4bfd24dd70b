package service

import (
	"context"
	"fmt"
	"time"

	"caretrack/internal/domain"
	"caretrack/internal/metrics"
	"caretrack/internal/repository"

	"go.uber.org/zap"
)

// Reminder delivers a reminder message to one user
type Reminder interface {
	Remind(userID int64) error
}

// ReminderService sends daily reminders to users who have not confirmed yet
type ReminderService struct {
	userRepo repository.UserRepository
	loc      *time.Location
	now      func() time.Time
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(
	userRepo repository.UserRepository,
	loc *time.Location,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{
		userRepo: userRepo,
		loc:      loc,
		now:      time.Now,
		metrics:  m,
		logger:   logger,
	}
}

// WithClock replaces the time source, for tests
func (s *ReminderService) WithClock(now func() time.Time) *ReminderService {
	s.now = now
	return s
}

// SendReminders notifies every pending user and returns how many were reached.
// A failed delivery is logged and does not stop the run.
func (s *ReminderService) SendReminders(ctx context.Context, reminder Reminder) (int, error) {
	today := domain.DateKey(s.now(), s.loc)

	s.logger.Info("Starting reminder run", zap.String("day", today))

	userIDs, err := s.userRepo.ListPendingReminders(ctx, today)
	if err != nil {
		s.logger.Error("Failed to list pending reminders", zap.Error(err))
		s.metrics.StoreErrorsTotal.WithLabelValues("list_pending").Inc()
		return 0, fmt.Errorf("%w: list pending reminders: %w", domain.ErrStoreUnavailable, err)
	}

	sent := 0
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		if err := reminder.Remind(userID); err != nil {
			s.logger.Warn("Failed to send reminder",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			s.metrics.RemindersTotal.WithLabelValues("failed").Inc()
			continue
		}

		s.metrics.RemindersTotal.WithLabelValues("sent").Inc()
		sent++
	}

	s.logger.Info("Reminder run completed",
		zap.Int("pending", len(userIDs)),
		zap.Int("sent", sent),
	)
	return sent, nil
}
