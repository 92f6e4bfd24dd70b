package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"caretrack/internal/domain"
	"caretrack/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMedicineService_EnsureUser(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "user fetched or created",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.mockError != nil {
				mockRepo.On("FetchOrCreate", mock.Anything, int64(123)).Return(nil, tt.mockError)
			} else {
				mockRepo.On("FetchOrCreate", mock.Anything, int64(123)).Return(testutil.NewTestUser(123, nil, nil), nil)
			}

			service := NewMedicineService(mockRepo)

			err := service.EnsureUser(context.Background(), 123)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMedicineService_List(t *testing.T) {
	tests := []struct {
		name          string
		user          *domain.User
		mockError     error
		expected      []string
		expectedError bool
	}{
		{
			name:     "medicines in order",
			user:     testutil.NewTestUser(123, []string{"Aspirin", "Ibuprofen"}, nil),
			expected: []string{"Aspirin", "Ibuprofen"},
		},
		{
			name:     "empty list",
			user:     testutil.NewTestUser(123, nil, nil),
			expected: []string{},
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.mockError != nil {
				mockRepo.On("FetchOrCreate", mock.Anything, int64(123)).Return(nil, tt.mockError)
			} else {
				mockRepo.On("FetchOrCreate", mock.Anything, int64(123)).Return(tt.user, nil)
			}

			service := NewMedicineService(mockRepo)

			medicines, err := service.List(context.Background(), 123)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, medicines)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMedicineService_Add(t *testing.T) {
	tests := []struct {
		name           string
		existing       []string
		input          string
		fetchError     error
		saveError      error
		expectSave     bool
		savedMedicines []string
		expected       domain.MedicineResult
		expectedError  bool
	}{
		{
			name:           "new medicine",
			existing:       []string{"Aspirin"},
			input:          "Ibuprofen",
			expectSave:     true,
			savedMedicines: []string{"Aspirin", "Ibuprofen"},
			expected:       domain.MedicineAdded,
		},
		{
			name:     "duplicate is not saved",
			existing: []string{"Ibuprofen"},
			input:    "  Ibuprofen  ",
			expected: domain.MedicineAlreadyExists,
		},
		{
			name:     "empty name is not saved",
			existing: []string{},
			input:    "  ",
			expected: domain.MedicineNameEmpty,
		},
		{
			name:          "fetch error",
			input:         "Ibuprofen",
			fetchError:    fmt.Errorf("db error"),
			expectedError: true,
		},
		{
			name:           "save error",
			existing:       []string{},
			input:          "Ibuprofen",
			expectSave:     true,
			savedMedicines: []string{"Ibuprofen"},
			saveError:      fmt.Errorf("db error"),
			expectedError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.fetchError != nil {
				mockRepo.On("FetchOrCreate", mock.Anything, int64(123)).Return(nil, tt.fetchError)
			} else {
				mockRepo.On("FetchOrCreate", mock.Anything, int64(123)).
					Return(testutil.NewTestUser(123, tt.existing, nil), nil)
			}
			if tt.expectSave {
				mockRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.ID == 123 && assert.ObjectsAreEqual(tt.savedMedicines, u.Medicines)
				})).Return(tt.saveError)
			}

			service := NewMedicineService(mockRepo)

			result, err := service.Add(context.Background(), 123, tt.input)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
			if !tt.expectSave {
				mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestMedicineService_Remove(t *testing.T) {
	tests := []struct {
		name           string
		existing       []string
		input          string
		fetchError     error
		saveError      error
		expectSave     bool
		savedMedicines []string
		expected       domain.MedicineResult
		expectedError  bool
	}{
		{
			name:           "existing medicine",
			existing:       []string{"Aspirin", "Ibuprofen", "Vitamin D"},
			input:          "Ibuprofen",
			expectSave:     true,
			savedMedicines: []string{"Aspirin", "Vitamin D"},
			expected:       domain.MedicineRemoved,
		},
		{
			name:     "never added",
			existing: []string{"Aspirin"},
			input:    "Ibuprofen",
			expected: domain.MedicineNotFound,
		},
		{
			name:          "fetch error",
			input:         "Ibuprofen",
			fetchError:    fmt.Errorf("db error"),
			expectedError: true,
		},
		{
			name:           "save error",
			existing:       []string{"Ibuprofen"},
			input:          "Ibuprofen",
			expectSave:     true,
			savedMedicines: []string{},
			saveError:      fmt.Errorf("db error"),
			expectedError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.fetchError != nil {
				mockRepo.On("FetchOrCreate", mock.Anything, int64(123)).Return(nil, tt.fetchError)
			} else {
				mockRepo.On("FetchOrCreate", mock.Anything, int64(123)).
					Return(testutil.NewTestUser(123, tt.existing, nil), nil)
			}
			if tt.expectSave {
				mockRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.ID == 123 && assert.ObjectsAreEqual(tt.savedMedicines, u.Medicines)
				})).Return(tt.saveError)
			}

			service := NewMedicineService(mockRepo)

			result, err := service.Remove(context.Background(), 123, tt.input)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
			if !tt.expectSave {
				mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestMedicineService_AddTwiceKeepsOneEntry(t *testing.T) {
	repo := testutil.NewFakeUserRepository()
	service := NewMedicineService(repo)
	ctx := context.Background()

	first, err := service.Add(ctx, 1, "Ibuprofen")
	assert.NoError(t, err)
	assert.Equal(t, domain.MedicineAdded, first)

	second, err := service.Add(ctx, 1, " Ibuprofen\t")
	assert.NoError(t, err)
	assert.Equal(t, domain.MedicineAlreadyExists, second)

	medicines, err := service.List(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Ibuprofen"}, medicines)
}

func TestMedicineService_RoundTrip(t *testing.T) {
	repo := testutil.NewFakeUserRepository()
	repo.Put(testutil.NewTestUser(1, []string{"Aspirin", "Vitamin D"}, nil))
	service := NewMedicineService(repo)
	ctx := context.Background()

	added, err := service.Add(ctx, 1, "Ibuprofen")
	assert.NoError(t, err)
	assert.Equal(t, domain.MedicineAdded, added)

	removed, err := service.Remove(ctx, 1, "Ibuprofen")
	assert.NoError(t, err)
	assert.Equal(t, domain.MedicineRemoved, removed)

	medicines, err := service.List(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Aspirin", "Vitamin D"}, medicines)
}
