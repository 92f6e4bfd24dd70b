package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrStoreUnavailable wraps every failure to read or write a user record
var ErrStoreUnavailable = errors.New("user store unavailable")

// User represents a bot user with their medicines and intake confirmations
type User struct {
	ID        int64
	Medicines []string
	Dates     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser returns an empty record for the given user
func NewUser(userID int64) *User {
	return &User{
		ID:        userID,
		Medicines: []string{},
		Dates:     []string{},
	}
}

// MedicineResult is the outcome of a medicine list mutation
type MedicineResult string

const (
	MedicineAdded         MedicineResult = "added"
	MedicineAlreadyExists MedicineResult = "already_exists"
	MedicineRemoved       MedicineResult = "removed"
	MedicineNotFound      MedicineResult = "not_found"
	MedicineNameEmpty     MedicineResult = "empty_name"
)

// ConfirmResult is the outcome of confirming today's intake
type ConfirmResult string

const (
	Confirmed        ConfirmResult = "confirmed"
	AlreadyConfirmed ConfirmResult = "already_confirmed"
)

// ListMedicines returns a copy of the medicine list in insertion order
func (u *User) ListMedicines() []string {
	meds := make([]string, len(u.Medicines))
	copy(meds, u.Medicines)
	return meds
}

// AddMedicine appends a trimmed name unless it is already on the list
func (u *User) AddMedicine(name string) MedicineResult {
	name = strings.TrimSpace(name)
	if name == "" {
		return MedicineNameEmpty
	}
	if u.medicineIndex(name) >= 0 {
		return MedicineAlreadyExists
	}
	u.Medicines = append(u.Medicines, name)
	return MedicineAdded
}

// RemoveMedicine deletes a trimmed name, keeping the order of the rest
func (u *User) RemoveMedicine(name string) MedicineResult {
	name = strings.TrimSpace(name)
	if name == "" {
		return MedicineNameEmpty
	}
	idx := u.medicineIndex(name)
	if idx < 0 {
		return MedicineNotFound
	}

	meds := make([]string, 0, len(u.Medicines)-1)
	meds = append(meds, u.Medicines[:idx]...)
	meds = append(meds, u.Medicines[idx+1:]...)
	u.Medicines = meds
	return MedicineRemoved
}

func (u *User) medicineIndex(name string) int {
	for i, m := range u.Medicines {
		if m == name {
			return i
		}
	}
	return -1
}

// HasConfirmed reports whether intake was confirmed on the given day
func (u *User) HasConfirmed(day string) bool {
	for _, d := range u.Dates {
		if d == day {
			return true
		}
	}
	return false
}

// ConfirmToday records the day once; repeated calls are no-ops
func (u *User) ConfirmToday(today string) ConfirmResult {
	if u.HasConfirmed(today) {
		return AlreadyConfirmed
	}
	u.Dates = append(u.Dates, today)
	return Confirmed
}

// Progress returns streak and total for the given day
func (u *User) Progress(today string) Progress {
	return CalculateProgress(u.Dates, today)
}
