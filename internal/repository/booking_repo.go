package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"calsync/internal/db"
	"calsync/internal/entities"
)

type BookingRepository interface {
	Create(b *db.Booking) error
	GetByCode(code string) (*db.Booking, error)
	ListUpcomingForUser(userID string) ([]entities.BookingResponse, error)
	UpdateStatus(code, status string) error
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, event_type_id, user_id, invitee_name, invitee_email, start_time, end_time, status, calendar_event_id, reminder_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(query,
		b.Code,
		b.EventTypeID,
		b.UserID,
		b.InviteeName,
		b.InviteeEmail,
		b.StartTime,
		b.EndTime,
		b.Status,
		b.CalendarEventID,
		b.ReminderSent,
		time.Now().UTC(),
		time.Now().UTC(),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *bookingRepository) GetByCode(code string) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT id, code, event_type_id, user_id, invitee_name, invitee_email, start_time, end_time, status, calendar_event_id, reminder_sent, created_at, updated_at
		FROM bookings WHERE code = $1`
	err := r.db.QueryRow(query, code).Scan(
		&b.ID, &b.Code, &b.EventTypeID, &b.UserID, &b.InviteeName, &b.InviteeEmail,
		&b.StartTime, &b.EndTime, &b.Status, &b.CalendarEventID, &b.ReminderSent,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *bookingRepository) ListUpcomingForUser(userID string) ([]entities.BookingResponse, error) {
	query := `
		SELECT b.code, et.title, b.invitee_name, b.invitee_email, b.start_time, b.end_time, b.status, b.created_at
		FROM bookings b
		JOIN event_types et ON et.id = b.event_type_id
		WHERE b.user_id = $1 AND b.status = 'confirmed' AND b.end_time > NOW()
		ORDER BY b.start_time`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.BookingResponse
	for rows.Next() {
		var b entities.BookingResponse
		err := rows.Scan(&b.Code, &b.EventTitle, &b.InviteeName, &b.InviteeEmail,
			&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(code, status string) error {
	_, err := r.db.Exec(
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE code = $2`,
		status, code,
	)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	return nil
}
