package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"calsync/internal/db"
)

type AvailabilityRepository interface {
	SeedDefaults(userID string, days []db.Availability) error
	ListForUser(userID string) ([]db.Availability, error)
	GetForUserAndDay(userID, day string) (*db.Availability, error)
	UpdateDay(userID string, item db.Availability) error
}

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

// SeedDefaults inserts the initial weekly rows for a new user inside one
// transaction; a conflict on (user_id, day) leaves existing rows untouched.
func (r *availabilityRepository) SeedDefaults(userID string, days []db.Availability) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting availability seed: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO availability (user_id, day, from_time, till_time, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, day) DO NOTHING`
	for _, d := range days {
		if _, err := tx.Exec(query, userID, d.Day, d.FromTime, d.TillTime, d.IsActive); err != nil {
			return fmt.Errorf("error seeding availability for %s: %w", d.Day, err)
		}
	}
	return tx.Commit()
}

func (r *availabilityRepository) ListForUser(userID string) ([]db.Availability, error) {
	query := `
		SELECT id, user_id, day, from_time, till_time, is_active
		FROM availability
		WHERE user_id = $1
		ORDER BY CASE day
			WHEN 'Monday' THEN 1
			WHEN 'Tuesday' THEN 2
			WHEN 'Wednesday' THEN 3
			WHEN 'Thursday' THEN 4
			WHEN 'Friday' THEN 5
			WHEN 'Saturday' THEN 6
			WHEN 'Sunday' THEN 7
		END`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying availability: %w", err)
	}
	defer rows.Close()

	var days []db.Availability
	for rows.Next() {
		var a db.Availability
		if err := rows.Scan(&a.ID, &a.UserID, &a.Day, &a.FromTime, &a.TillTime, &a.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning availability row: %w", err)
		}
		days = append(days, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating availability rows: %w", err)
	}
	return days, nil
}

func (r *availabilityRepository) GetForUserAndDay(userID, day string) (*db.Availability, error) {
	var a db.Availability
	query := `
		SELECT id, user_id, day, from_time, till_time, is_active
		FROM availability
		WHERE user_id = $1 AND day = $2`
	err := r.db.QueryRow(query, userID, day).
		Scan(&a.ID, &a.UserID, &a.Day, &a.FromTime, &a.TillTime, &a.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying availability for day %s: %w", day, err)
	}
	return &a, nil
}

func (r *availabilityRepository) UpdateDay(userID string, item db.Availability) error {
	result, err := r.db.Exec(
		`UPDATE availability SET from_time = $1, till_time = $2, is_active = $3 WHERE user_id = $4 AND day = $5`,
		item.FromTime, item.TillTime, item.IsActive, userID, item.Day,
	)
	if err != nil {
		return fmt.Errorf("error updating availability for %s: %w", item.Day, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("no availability row for day %s", item.Day)
	}
	return nil
}
