package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"calsync/internal/availability"
	"calsync/internal/db"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarClient is the external calendar provider: the busy-interval source
// for slot computation and the sink for confirmed meetings.
type CalendarClient interface {
	GetBusyIntervals(ctx context.Context, user *db.User, start, end time.Time) ([]availability.Interval, error)
	CreateMeeting(ctx context.Context, user *db.User, details MeetingDetails) (string, error)
	DeleteMeeting(ctx context.Context, user *db.User, eventID string) error
}

// MeetingDetails describes one confirmed booking to create on the host's
// calendar.
type MeetingDetails struct {
	Code              string
	Title             string
	Description       string
	Start             time.Time
	End               time.Time
	Timezone          string
	InviteeName       string
	InviteeEmail      string
	VideoCallSoftware string
}

type GoogleCalendarService struct {
	oauth *oauth2.Config
}

func NewGoogleCalendarService(clientID, clientSecret, redirectURL string) *GoogleCalendarService {
	return &GoogleCalendarService{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{calendar.CalendarScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the consent URL for the web OAuth flow. Offline access is
// required so the stored token keeps refreshing after the first grant.
func (s *GoogleCalendarService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode trades the callback authorization code for a token and returns
// it serialized for storage on the user row, together with the granted email.
func (s *GoogleCalendarService) ExchangeCode(ctx context.Context, code string) ([]byte, string, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("error exchanging authorization code: %w", err)
	}

	raw, err := json.Marshal(token)
	if err != nil {
		return nil, "", fmt.Errorf("error serializing token: %w", err)
	}

	email, err := s.grantedEmail(ctx, token)
	if err != nil {
		return nil, "", err
	}
	return raw, email, nil
}

// grantedEmail asks the Calendar API which account the token belongs to; the
// primary calendar's ID is the account email.
func (s *GoogleCalendarService) grantedEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(s.oauth.TokenSource(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("error creating calendar service: %w", err)
	}
	primary, err := svc.Calendars.Get("primary").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("error resolving granted account: %w", err)
	}
	return primary.Id, nil
}

func (s *GoogleCalendarService) serviceFor(ctx context.Context, user *db.User) (*calendar.Service, error) {
	if len(user.GrantToken) == 0 {
		return nil, fmt.Errorf("user %s has no calendar connected", user.ID)
	}
	var token oauth2.Token
	if err := json.Unmarshal(user.GrantToken, &token); err != nil {
		return nil, fmt.Errorf("error parsing stored calendar token: %w", err)
	}
	svc, err := calendar.NewService(ctx, option.WithTokenSource(s.oauth.TokenSource(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("error creating calendar service: %w", err)
	}
	return svc, nil
}

// GetBusyIntervals runs the provider free/busy query for [start, end) against
// the user's primary calendar.
func (s *GoogleCalendarService) GetBusyIntervals(ctx context.Context, user *db.User, start, end time.Time) ([]availability.Interval, error) {
	svc, err := s.serviceFor(ctx, user)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: "primary"}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error querying free/busy: %w", err)
	}

	cal, ok := resp.Calendars["primary"]
	if !ok {
		return nil, nil
	}
	var busy []availability.Interval
	for _, period := range cal.Busy {
		busyStart, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("error parsing busy period start %q: %w", period.Start, err)
		}
		busyEnd, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("error parsing busy period end %q: %w", period.End, err)
		}
		busy = append(busy, availability.Interval{Start: busyStart, End: busyEnd})
	}
	return busy, nil
}

// CreateMeeting inserts the booking on the host's primary calendar with the
// invitee as attendee. For Google Meet a conference link is requested from the
// provider; other tools only appear in the event location since the provider
// cannot mint their links.
func (s *GoogleCalendarService) CreateMeeting(ctx context.Context, user *db.User, details MeetingDetails) (string, error) {
	svc, err := s.serviceFor(ctx, user)
	if err != nil {
		return "", err
	}

	hostEmail := user.Email
	if user.GrantEmail.Valid {
		hostEmail = user.GrantEmail.String
	}

	event := &calendar.Event{
		Summary:     fmt.Sprintf("%s: %s", details.Title, details.InviteeName),
		Description: details.Description,
		Start: &calendar.EventDateTime{
			DateTime: details.Start.Format(time.RFC3339),
			TimeZone: details.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: details.End.Format(time.RFC3339),
			TimeZone: details.Timezone,
		},
		Attendees: []*calendar.EventAttendee{
			{Email: hostEmail, Organizer: true},
			{Email: details.InviteeEmail, DisplayName: details.InviteeName},
		},
	}

	insert := svc.Events.Insert("primary", event).SendUpdates("all").Context(ctx)
	if details.VideoCallSoftware == "Google Meet" {
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             details.Code,
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		}
		insert = insert.ConferenceDataVersion(1)
	} else if details.VideoCallSoftware != "" {
		event.Location = details.VideoCallSoftware
	}

	created, err := insert.Do()
	if err != nil {
		return "", fmt.Errorf("error creating calendar event: %w", err)
	}
	return created.Id, nil
}

// DeleteMeeting removes a previously created event, notifying attendees.
func (s *GoogleCalendarService) DeleteMeeting(ctx context.Context, user *db.User, eventID string) error {
	svc, err := s.serviceFor(ctx, user)
	if err != nil {
		return err
	}
	if err := svc.Events.Delete("primary", eventID).SendUpdates("all").Context(ctx).Do(); err != nil {
		return fmt.Errorf("error deleting calendar event: %w", err)
	}
	return nil
}
