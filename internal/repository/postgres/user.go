package postgres

import (
	"context"
	"database/sql"
	"errors"

	"caretrack/internal/domain"

	"github.com/lib/pq"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// FetchOrCreate returns the user record, inserting an empty one if missing
func (r *UserRepo) FetchOrCreate(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := r.fetch(ctx, userID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// First contact, create the record lazily
	u = domain.NewUser(userID)
	insert := `
		INSERT INTO users (id, medicines, dates)
		VALUES ($1, '{}', '{}')
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, insert, userID).Scan(&u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Inserted concurrently by another update
		return r.fetch(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *UserRepo) fetch(ctx context.Context, userID int64) (*domain.User, error) {
	u := domain.NewUser(userID)
	query := `SELECT id, medicines, dates, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&u.ID, pq.Array(&u.Medicines), pq.Array(&u.Dates), &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// NULL arrays from hand-edited rows must not leak out as nil
	if u.Medicines == nil {
		u.Medicines = []string{}
	}
	if u.Dates == nil {
		u.Dates = []string{}
	}

	return u, nil
}

// Upsert stores the full record
func (r *UserRepo) Upsert(ctx context.Context, user *domain.User) error {
	medicines := user.Medicines
	if medicines == nil {
		medicines = []string{}
	}
	dates := user.Dates
	if dates == nil {
		dates = []string{}
	}

	query := `
		INSERT INTO users (id, medicines, dates)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET medicines = EXCLUDED.medicines, dates = EXCLUDED.dates, updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, pq.Array(medicines), pq.Array(dates))
	return err
}

// ListPendingReminders returns ids of users that have medicines but no confirmation for day
func (r *UserRepo) ListPendingReminders(ctx context.Context, day string) ([]int64, error) {
	query := `
		SELECT id
		FROM users
		WHERE cardinality(medicines) > 0
			AND NOT ($1 = ANY(dates))
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
