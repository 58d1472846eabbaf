package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"calsync/internal/db"
)

type EventTypeRepository interface {
	Create(et *db.EventType) error
	ListForUser(userID string) ([]db.EventType, error)
	GetByID(id, userID string) (*db.EventType, error)
	GetActiveByUserNameAndURL(userName, url string) (*db.EventType, error)
	Update(et *db.EventType) error
	SetActive(id, userID string, active bool) error
	Delete(id, userID string) error
}

type eventTypeRepository struct {
	db *sql.DB
}

func NewEventTypeRepository(db *sql.DB) EventTypeRepository {
	return &eventTypeRepository{db: db}
}

func (r *eventTypeRepository) Create(et *db.EventType) error {
	query := `
		INSERT INTO event_types (id, user_id, title, url, description, duration, video_call_software, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at`
	return r.db.QueryRow(query,
		et.ID, et.UserID, et.Title, et.URL, et.Description,
		et.Duration, et.VideoCallSoftware, et.Active,
	).Scan(&et.CreatedAt)
}

func (r *eventTypeRepository) ListForUser(userID string) ([]db.EventType, error) {
	query := `
		SELECT id, user_id, title, url, description, duration, video_call_software, active, created_at
		FROM event_types
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying event types: %w", err)
	}
	defer rows.Close()

	var types []db.EventType
	for rows.Next() {
		var et db.EventType
		err := rows.Scan(&et.ID, &et.UserID, &et.Title, &et.URL, &et.Description,
			&et.Duration, &et.VideoCallSoftware, &et.Active, &et.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning event type: %w", err)
		}
		types = append(types, et)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating event types: %w", err)
	}
	return types, nil
}

func (r *eventTypeRepository) GetByID(id, userID string) (*db.EventType, error) {
	var et db.EventType
	query := `
		SELECT id, user_id, title, url, description, duration, video_call_software, active, created_at
		FROM event_types
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).Scan(
		&et.ID, &et.UserID, &et.Title, &et.URL, &et.Description,
		&et.Duration, &et.VideoCallSoftware, &et.Active, &et.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying event type: %w", err)
	}
	return &et, nil
}

// GetActiveByUserNameAndURL resolves the booking-page lookup: the slug is only
// reachable through the owner's public username, and inactive event types are
// invisible.
func (r *eventTypeRepository) GetActiveByUserNameAndURL(userName, url string) (*db.EventType, error) {
	var et db.EventType
	query := `
		SELECT et.id, et.user_id, et.title, et.url, et.description, et.duration, et.video_call_software, et.active, et.created_at
		FROM event_types et
		JOIN users u ON u.id = et.user_id
		WHERE u.user_name = $1 AND et.url = $2 AND et.active = TRUE`
	err := r.db.QueryRow(query, userName, url).Scan(
		&et.ID, &et.UserID, &et.Title, &et.URL, &et.Description,
		&et.Duration, &et.VideoCallSoftware, &et.Active, &et.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying public event type: %w", err)
	}
	return &et, nil
}

func (r *eventTypeRepository) Update(et *db.EventType) error {
	_, err := r.db.Exec(`
		UPDATE event_types
		SET title = $1, url = $2, description = $3, duration = $4, video_call_software = $5
		WHERE id = $6 AND user_id = $7`,
		et.Title, et.URL, et.Description, et.Duration, et.VideoCallSoftware, et.ID, et.UserID,
	)
	if err != nil {
		return fmt.Errorf("error updating event type: %w", err)
	}
	return nil
}

func (r *eventTypeRepository) SetActive(id, userID string, active bool) error {
	_, err := r.db.Exec(
		`UPDATE event_types SET active = $1 WHERE id = $2 AND user_id = $3`,
		active, id, userID,
	)
	if err != nil {
		return fmt.Errorf("error toggling event type: %w", err)
	}
	return nil
}

func (r *eventTypeRepository) Delete(id, userID string) error {
	_, err := r.db.Exec(`DELETE FROM event_types WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting event type: %w", err)
	}
	return nil
}
