package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"calsync/internal/availability"
	"calsync/internal/db"
	"calsync/internal/entities"
	apperrors "calsync/internal/errors"
	"calsync/internal/repository"

	"github.com/google/uuid"
)

const (
	statusConfirmed = "confirmed"
	statusCanceled  = "canceled"
	statusCompleted = "completed"
)

type BookingService struct {
	Repo         repository.BookingRepository
	EventTypes   repository.EventTypeRepository
	Availability repository.AvailabilityRepository
	Users        repository.UserRepository
	Calendar     CalendarClient
	Sender       *SenderService

	// Loc is the wall-clock location availability windows are interpreted in.
	// Now is time.Now unless a test overrides it.
	Loc *time.Location
	Now func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	eventTypes repository.EventTypeRepository,
	avail repository.AvailabilityRepository,
	users repository.UserRepository,
	cal CalendarClient,
	sender *SenderService,
	loc *time.Location,
) *BookingService {
	return &BookingService{
		Repo:         repo,
		EventTypes:   eventTypes,
		Availability: avail,
		Users:        users,
		Calendar:     cal,
		Sender:       sender,
		Loc:          loc,
		Now:          time.Now,
	}
}

// ListSlots computes the bookable start times for one day of an event type's
// booking page: the host's configured window for that weekday minus the
// provider-reported busy intervals and past times. Returns nil when the event
// type does not exist or is inactive.
func (s *BookingService) ListSlots(ctx context.Context, userName, eventURL, date string) (*entities.SlotsResponse, error) {
	et, err := s.EventTypes.GetActiveByUserNameAndURL(userName, eventURL)
	if err != nil {
		return nil, err
	}
	if et == nil {
		return nil, nil
	}

	day, err := time.ParseInLocation("2006-01-02", date, s.Loc)
	if err != nil {
		return nil, fmt.Errorf("date must be yyyy-MM-dd: %w", err)
	}

	resp := &entities.SlotsResponse{Date: date, Duration: et.Duration, Slots: []string{}}

	window, err := s.Availability.GetForUserAndDay(et.UserID, day.Weekday().String())
	if err != nil {
		return nil, err
	}
	if window == nil || !window.IsActive {
		return resp, nil
	}

	host, err := s.Users.GetByID(et.UserID)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, errors.New("event type owner not found")
	}

	dayStart := day
	dayEnd := day.Add(24*time.Hour - time.Second)
	busy, err := s.Calendar.GetBusyIntervals(ctx, host, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("error fetching busy intervals: %w", err)
	}

	slots, err := availability.ComputeAvailableSlots(
		availability.Window{Date: date, FromTime: window.FromTime, TillTime: window.TillTime},
		busy,
		et.Duration,
		s.Now(),
		s.Loc,
	)
	if err != nil {
		return nil, fmt.Errorf("error computing slots: %w", err)
	}

	resp.Slots = slots
	return resp, nil
}

// CreateBooking confirms a slot picked from the booking page: the meeting is
// created on the host's calendar, the booking row stored, and the invitee
// notified. Returns nil when the event type does not exist or is inactive.
func (s *BookingService) CreateBooking(ctx context.Context, req entities.CreateBookingRequest) (*entities.BookingResponse, error) {
	if req.InviteeName == "" || req.InviteeEmail == "" {
		return nil, apperrors.ErrBadRequest("invitee name and email are required")
	}

	et, err := s.EventTypes.GetActiveByUserNameAndURL(req.Username, req.EventURL)
	if err != nil {
		return nil, err
	}
	if et == nil {
		return nil, nil
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, s.Loc)
	if err != nil {
		return nil, apperrors.ErrBadRequest("booking date/time must be yyyy-MM-dd and HH:mm")
	}
	end := start.Add(time.Duration(et.Duration) * time.Minute)

	host, err := s.Users.GetByID(et.UserID)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, errors.New("event type owner not found")
	}

	code := uuid.NewString()

	eventID, err := s.Calendar.CreateMeeting(ctx, host, MeetingDetails{
		Code:              code,
		Title:             et.Title,
		Description:       et.Description,
		Start:             start,
		End:               end,
		Timezone:          s.Loc.String(),
		InviteeName:       req.InviteeName,
		InviteeEmail:      req.InviteeEmail,
		VideoCallSoftware: et.VideoCallSoftware,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating calendar meeting: %w", err)
	}

	booking := &db.Booking{
		Code:            code,
		EventTypeID:     et.ID,
		UserID:          et.UserID,
		InviteeName:     req.InviteeName,
		InviteeEmail:    req.InviteeEmail,
		StartTime:       start,
		EndTime:         end,
		Status:          statusConfirmed,
		CalendarEventID: sql.NullString{String: eventID, Valid: true},
	}
	if err := s.Repo.Create(booking); err != nil {
		log.Printf("Error creating booking in repository: %v", err)
		return nil, err
	}

	s.Sender.SendBookingEmail(bookingEmailData(booking, et, host), req.InviteeEmail, statusConfirmed)

	return &entities.BookingResponse{
		Code:         booking.Code,
		EventTitle:   et.Title,
		InviteeName:  booking.InviteeName,
		InviteeEmail: booking.InviteeEmail,
		StartTime:    booking.StartTime,
		EndTime:      booking.EndTime,
		Status:       booking.Status,
		CreatedAt:    booking.CreatedAt,
	}, nil
}

func (s *BookingService) ListBookings(userID string) ([]entities.BookingResponse, error) {
	return s.Repo.ListUpcomingForUser(userID)
}

// CancelBooking removes the provider event and marks the booking canceled.
// Only the host can cancel through the dashboard.
func (s *BookingService) CancelBooking(ctx context.Context, userID, code string) error {
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return apperrors.ErrNotFound("booking not found")
	}
	if booking.Status != statusConfirmed {
		return apperrors.ErrConflict(fmt.Sprintf("booking %s is already %s", code, booking.Status))
	}

	host, err := s.Users.GetByID(booking.UserID)
	if err != nil {
		return err
	}

	if booking.CalendarEventID.Valid && host != nil {
		if err := s.Calendar.DeleteMeeting(ctx, host, booking.CalendarEventID.String); err != nil {
			// The row is still canceled; a stale provider event is better
			// than a booking the host cannot get rid of.
			log.Printf("Error deleting calendar event for booking %s: %v", code, err)
		}
	}

	if err := s.Repo.UpdateStatus(code, statusCanceled); err != nil {
		return err
	}

	et, err := s.EventTypes.GetByID(booking.EventTypeID, booking.UserID)
	if err == nil && et != nil && host != nil {
		s.Sender.SendBookingEmail(bookingEmailData(booking, et, host), booking.InviteeEmail, statusCanceled)
	}
	return nil
}

func bookingEmailData(b *db.Booking, et *db.EventType, host *db.User) entities.BookingEmailData {
	return entities.BookingEmailData{
		InviteeName:        b.InviteeName,
		HostName:           host.Name,
		EventTitle:         et.Title,
		BookingCode:        b.Code,
		StartTimeFormatted: b.StartTime.Format("02 Jan 2006 15:04"),
		EndTimeFormatted:   b.EndTime.Format("02 Jan 2006 15:04"),
		VideoCallSoftware:  et.VideoCallSoftware,
		CurrentYear:        time.Now().Year(),
	}
}
