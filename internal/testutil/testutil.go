package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"caretrack/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, medicines []string, dates []string) *domain.User {
	if medicines == nil {
		medicines = []string{}
	}
	if dates == nil {
		dates = []string{}
	}
	return &domain.User{
		ID:        userID,
		Medicines: medicines,
		Dates:     dates,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// FixedClock returns a time source frozen at t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// FakeUserRepository is an in-memory UserRepository for scenario tests
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[int64]domain.User

	// Err, when set, is returned by every call
	Err error
}

// NewFakeUserRepository creates an empty fake repository
func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: make(map[int64]domain.User)}
}

func (r *FakeUserRepository) FetchOrCreate(ctx context.Context, userID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	u, exists := r.users[userID]
	if !exists {
		u = *domain.NewUser(userID)
		r.users[userID] = u
	}
	return cloneUser(u), nil
}

func (r *FakeUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	r.users[user.ID] = *cloneUser(*user)
	return nil
}

func (r *FakeUserRepository) ListPendingReminders(ctx context.Context, day string) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	var ids []int64
	for id, u := range r.users {
		if len(u.Medicines) > 0 && !u.HasConfirmed(day) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Get returns a copy of the stored record, if any
func (r *FakeUserRepository) Get(userID int64) (*domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[userID]
	if !exists {
		return nil, false
	}
	return cloneUser(u), true
}

// Put stores a record directly
func (r *FakeUserRepository) Put(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *cloneUser(*user)
}

func cloneUser(u domain.User) *domain.User {
	u.Medicines = append([]string{}, u.Medicines...)
	u.Dates = append([]string{}, u.Dates...)
	return &u
}
