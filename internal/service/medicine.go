package service

import (
	"context"
	"fmt"

	"caretrack/internal/domain"
	"caretrack/internal/repository"
)

// MedicineService manages users' medicine lists
type MedicineService struct {
	userRepo repository.UserRepository
}

// NewMedicineService creates a new medicine service
func NewMedicineService(userRepo repository.UserRepository) *MedicineService {
	return &MedicineService{userRepo: userRepo}
}

// EnsureUser creates the user record on first contact
func (s *MedicineService) EnsureUser(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.FetchOrCreate(ctx, userID); err != nil {
		return storeError("fetch user", userID, err)
	}
	return nil
}

// List returns the user's medicines in insertion order
func (s *MedicineService) List(ctx context.Context, userID int64) ([]string, error) {
	user, err := s.userRepo.FetchOrCreate(ctx, userID)
	if err != nil {
		return nil, storeError("fetch user", userID, err)
	}
	return user.ListMedicines(), nil
}

// Add appends a medicine, persisting only when the list changed
func (s *MedicineService) Add(ctx context.Context, userID int64, name string) (domain.MedicineResult, error) {
	user, err := s.userRepo.FetchOrCreate(ctx, userID)
	if err != nil {
		return "", storeError("fetch user", userID, err)
	}

	result := user.AddMedicine(name)
	if result != domain.MedicineAdded {
		return result, nil
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return "", storeError("save user", userID, err)
	}
	return result, nil
}

// Remove deletes a medicine, persisting only when the list changed
func (s *MedicineService) Remove(ctx context.Context, userID int64, name string) (domain.MedicineResult, error) {
	user, err := s.userRepo.FetchOrCreate(ctx, userID)
	if err != nil {
		return "", storeError("fetch user", userID, err)
	}

	result := user.RemoveMedicine(name)
	if result != domain.MedicineRemoved {
		return result, nil
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return "", storeError("save user", userID, err)
	}
	return result, nil
}

func storeError(op string, userID int64, err error) error {
	return fmt.Errorf("%w: %s %d: %w", domain.ErrStoreUnavailable, op, userID, err)
}
