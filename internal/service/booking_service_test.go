package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"calsync/internal/availability"
	"calsync/internal/db"
	"calsync/internal/entities"
	"calsync/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventTypeRepo struct {
	repository.EventTypeRepository
	byUserNameAndURL map[string]*db.EventType
	byID             map[string]*db.EventType
}

func (f *fakeEventTypeRepo) GetActiveByUserNameAndURL(userName, url string) (*db.EventType, error) {
	return f.byUserNameAndURL[userName+"/"+url], nil
}

func (f *fakeEventTypeRepo) GetByID(id, userID string) (*db.EventType, error) {
	return f.byID[id], nil
}

type fakeAvailabilityRepo struct {
	repository.AvailabilityRepository
	byDay map[string]*db.Availability
}

func (f *fakeAvailabilityRepo) GetForUserAndDay(userID, day string) (*db.Availability, error) {
	return f.byDay[day], nil
}

type fakeUserRepo struct {
	repository.UserRepository
	byID map[string]*db.User
}

func (f *fakeUserRepo) GetByID(id string) (*db.User, error) {
	return f.byID[id], nil
}

type fakeBookingRepo struct {
	repository.BookingRepository
	created  []*db.Booking
	byCode   map[string]*db.Booking
	statuses map[string]string
}

func (f *fakeBookingRepo) Create(b *db.Booking) error {
	b.ID = len(f.created) + 1
	b.CreatedAt = time.Now()
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookingRepo) GetByCode(code string) (*db.Booking, error) {
	b, ok := f.byCode[code]
	if !ok {
		return nil, errors.New("booking not found")
	}
	return b, nil
}

func (f *fakeBookingRepo) UpdateStatus(code, status string) error {
	if f.statuses == nil {
		f.statuses = map[string]string{}
	}
	f.statuses[code] = status
	return nil
}

type fakeCalendar struct {
	busy    []availability.Interval
	busyErr error

	createdDetails []MeetingDetails
	deletedEvents  []string
}

func (f *fakeCalendar) GetBusyIntervals(ctx context.Context, user *db.User, start, end time.Time) ([]availability.Interval, error) {
	return f.busy, f.busyErr
}

func (f *fakeCalendar) CreateMeeting(ctx context.Context, user *db.User, details MeetingDetails) (string, error) {
	f.createdDetails = append(f.createdDetails, details)
	return "evt-123", nil
}

func (f *fakeCalendar) DeleteMeeting(ctx context.Context, user *db.User, eventID string) error {
	f.deletedEvents = append(f.deletedEvents, eventID)
	return nil
}

func newTestBookingService(et *db.EventType, window *db.Availability, cal *fakeCalendar) (*BookingService, *fakeBookingRepo) {
	host := &db.User{ID: "host-1", Email: "host@example.com", Name: "Jordan Host"}
	bookings := &fakeBookingRepo{byCode: map[string]*db.Booking{}}

	etRepo := &fakeEventTypeRepo{
		byUserNameAndURL: map[string]*db.EventType{},
		byID:             map[string]*db.EventType{},
	}
	if et != nil {
		etRepo.byUserNameAndURL["jordan/intro-call"] = et
		etRepo.byID[et.ID] = et
	}

	availRepo := &fakeAvailabilityRepo{byDay: map[string]*db.Availability{}}
	if window != nil {
		availRepo.byDay[window.Day] = window
	}

	svc := NewBookingService(
		bookings,
		etRepo,
		availRepo,
		&fakeUserRepo{byID: map[string]*db.User{"host-1": host}},
		cal,
		NewSenderService(),
		time.UTC,
	)
	return svc, bookings
}

func testEventType() *db.EventType {
	return &db.EventType{
		ID:                "et-1",
		UserID:            "host-1",
		Title:             "Intro Call",
		URL:               "intro-call",
		Duration:          30,
		VideoCallSoftware: "Google Meet",
		Active:            true,
	}
}

// 2026-03-09 is a Monday.
const testDate = "2026-03-09"

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func testWindow() *db.Availability {
	return &db.Availability{UserID: "host-1", Day: "Monday", FromTime: "08:00", TillTime: "18:00", IsActive: true}
}

func TestListSlots(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	cal := &fakeCalendar{busy: []availability.Interval{
		{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
	}}
	svc, _ := newTestBookingService(testEventType(), testWindow(), cal)
	svc.Now = func() time.Time { return day }

	resp, err := svc.ListSlots(context.Background(), "jordan", "intro-call", testDate)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, 30, resp.Duration)
	assert.Len(t, resp.Slots, 18)
	assert.NotContains(t, resp.Slots, "09:00")
	assert.NotContains(t, resp.Slots, "09:30")
	assert.Contains(t, resp.Slots, "08:30")
	assert.Contains(t, resp.Slots, "10:00")
}

func TestListSlots_InactiveDay(t *testing.T) {
	window := testWindow()
	window.IsActive = false
	svc, _ := newTestBookingService(testEventType(), window, &fakeCalendar{})

	resp, err := svc.ListSlots(context.Background(), "jordan", "intro-call", testDate)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Empty(t, resp.Slots)
}

func TestListSlots_UnknownEventType(t *testing.T) {
	svc, _ := newTestBookingService(nil, nil, &fakeCalendar{})

	resp, err := svc.ListSlots(context.Background(), "jordan", "intro-call", testDate)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestListSlots_ProviderFailure(t *testing.T) {
	cal := &fakeCalendar{busyErr: errors.New("free/busy unavailable")}
	svc, _ := newTestBookingService(testEventType(), testWindow(), cal)

	_, err := svc.ListSlots(context.Background(), "jordan", "intro-call", testDate)
	assert.Error(t, err)
}

func TestCreateBooking(t *testing.T) {
	cal := &fakeCalendar{}
	svc, bookings := newTestBookingService(testEventType(), testWindow(), cal)

	resp, err := svc.CreateBooking(context.Background(), entities.CreateBookingRequest{
		Username:     "jordan",
		EventURL:     "intro-call",
		InviteeName:  "Sam Invitee",
		InviteeEmail: "sam@example.com",
		Date:         testDate,
		Time:         "10:30",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.Len(t, bookings.created, 1)
	stored := bookings.created[0]
	assert.Equal(t, "confirmed", stored.Status)
	assert.Equal(t, "evt-123", stored.CalendarEventID.String)
	assert.Equal(t, time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC), stored.StartTime)
	assert.Equal(t, time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC), stored.EndTime)

	require.Len(t, cal.createdDetails, 1)
	details := cal.createdDetails[0]
	assert.Equal(t, "Intro Call", details.Title)
	assert.Equal(t, "sam@example.com", details.InviteeEmail)
	assert.Equal(t, stored.Code, details.Code)
}

func TestCreateBooking_MissingInvitee(t *testing.T) {
	svc, _ := newTestBookingService(testEventType(), testWindow(), &fakeCalendar{})

	_, err := svc.CreateBooking(context.Background(), entities.CreateBookingRequest{
		Username: "jordan",
		EventURL: "intro-call",
		Date:     testDate,
		Time:     "10:30",
	})
	assert.Error(t, err)
}

func TestCancelBooking(t *testing.T) {
	cal := &fakeCalendar{}
	svc, bookings := newTestBookingService(testEventType(), testWindow(), cal)
	bookings.byCode["abc"] = &db.Booking{
		Code:            "abc",
		EventTypeID:     "et-1",
		UserID:          "host-1",
		InviteeEmail:    "sam@example.com",
		Status:          "confirmed",
		CalendarEventID: toNullString("evt-123"),
	}

	err := svc.CancelBooking(context.Background(), "host-1", "abc")
	require.NoError(t, err)
	assert.Equal(t, "canceled", bookings.statuses["abc"])
	assert.Equal(t, []string{"evt-123"}, cal.deletedEvents)
}

func TestCancelBooking_WrongUser(t *testing.T) {
	svc, bookings := newTestBookingService(testEventType(), testWindow(), &fakeCalendar{})
	bookings.byCode["abc"] = &db.Booking{Code: "abc", UserID: "host-1", Status: "confirmed"}

	err := svc.CancelBooking(context.Background(), "someone-else", "abc")
	assert.Error(t, err)
	assert.Empty(t, bookings.statuses)
}
