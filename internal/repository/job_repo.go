package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetConfirmedBookingIDsPastEndTime returns IDs of confirmed bookings whose
// end time has already passed.
func (r *JobRepository) GetConfirmedBookingIDsPastEndTime() ([]int, error) {
	query := `SELECT id FROM bookings WHERE status = 'confirmed' AND end_time < NOW()`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed bookings past end time: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateBookingStatuses updates the status of a list of bookings, touching
// updated_at as well.
func (r *JobRepository) UpdateBookingStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d bookings to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// GetBookingsNeedingReminder returns confirmed bookings starting within the
// given horizon whose reminder has not gone out yet, joined with the pieces
// the notifier needs.
func (r *JobRepository) GetBookingsNeedingReminder(horizon time.Duration) ([]ReminderInfo, error) {
	query := `
		SELECT b.id, b.code, b.invitee_name, b.invitee_email, b.start_time, b.end_time,
			et.title, et.video_call_software, u.name, u.phone
		FROM bookings b
		JOIN event_types et ON et.id = b.event_type_id
		JOIN users u ON u.id = b.user_id
		WHERE b.status = 'confirmed'
			AND b.reminder_sent = FALSE
			AND b.start_time > NOW()
			AND b.start_time <= NOW() + $1::interval
		ORDER BY b.start_time`

	rows, err := r.DB.Query(query, fmt.Sprintf("%d minutes", int(horizon.Minutes())))
	if err != nil {
		return nil, fmt.Errorf("error querying bookings needing reminder: %w", err)
	}
	defer rows.Close()

	var infos []ReminderInfo
	for rows.Next() {
		var ri ReminderInfo
		err := rows.Scan(&ri.BookingID, &ri.Code, &ri.InviteeName, &ri.InviteeEmail,
			&ri.StartTime, &ri.EndTime, &ri.EventTitle, &ri.VideoCallSoftware,
			&ri.HostName, &ri.HostPhone)
		if err != nil {
			return nil, fmt.Errorf("error scanning reminder row: %w", err)
		}
		infos = append(infos, ri)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reminder rows: %w", err)
	}
	return infos, nil
}

// MarkRemindersSent flips the reminder flag for the given bookings.
func (r *JobRepository) MarkRemindersSent(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(`UPDATE bookings SET reminder_sent = TRUE, updated_at = NOW() WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error marking reminders sent: %w", err)
	}
	return nil
}

// ReminderInfo carries everything the reminder pass needs for one booking.
type ReminderInfo struct {
	BookingID         int
	Code              string
	InviteeName       string
	InviteeEmail      string
	StartTime         time.Time
	EndTime           time.Time
	EventTitle        string
	VideoCallSoftware string
	HostName          string
	HostPhone         sql.NullString
}
