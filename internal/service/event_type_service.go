package service

import (
	"errors"
	"fmt"
	"regexp"

	"calsync/internal/db"
	"calsync/internal/entities"
	"calsync/internal/repository"

	"github.com/google/uuid"
)

var urlSlugPattern = regexp.MustCompile(`^[a-z0-9-]{1,60}$`)

var videoCallProviders = map[string]bool{
	"Google Meet":     true,
	"Zoom Meeting":    true,
	"Microsoft Teams": true,
}

type EventTypeService struct {
	Repo         repository.EventTypeRepository
	Users        repository.UserRepository
	Availability repository.AvailabilityRepository
}

func NewEventTypeService(repo repository.EventTypeRepository, users repository.UserRepository, availability repository.AvailabilityRepository) *EventTypeService {
	return &EventTypeService{Repo: repo, Users: users, Availability: availability}
}

func (s *EventTypeService) Create(userID string, req entities.EventTypeRequest) (*entities.EventTypeResponse, error) {
	if err := validateEventType(req); err != nil {
		return nil, err
	}

	et := &db.EventType{
		ID:                uuid.NewString(),
		UserID:            userID,
		Title:             req.Title,
		URL:               req.URL,
		Description:       req.Description,
		Duration:          req.Duration,
		VideoCallSoftware: req.VideoCallSoftware,
		Active:            true,
	}
	if err := s.Repo.Create(et); err != nil {
		return nil, fmt.Errorf("error creating event type: %w", err)
	}
	return toEventTypeResponse(et), nil
}

func (s *EventTypeService) ListForUser(userID string) ([]entities.EventTypeResponse, error) {
	rows, err := s.Repo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.EventTypeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toEventTypeResponse(&rows[i]))
	}
	return out, nil
}

func (s *EventTypeService) Update(userID, id string, req entities.EventTypeRequest) error {
	if err := validateEventType(req); err != nil {
		return err
	}

	existing, err := s.Repo.GetByID(id, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("event type not found")
	}

	existing.Title = req.Title
	existing.URL = req.URL
	existing.Description = req.Description
	existing.Duration = req.Duration
	existing.VideoCallSoftware = req.VideoCallSoftware
	return s.Repo.Update(existing)
}

func (s *EventTypeService) SetActive(userID, id string, active bool) error {
	return s.Repo.SetActive(id, userID, active)
}

func (s *EventTypeService) Delete(userID, id string) error {
	return s.Repo.Delete(id, userID)
}

// GetPublic assembles the booking-page view: an active event type looked up by
// (username, slug) plus the host's active weekdays for the date picker.
func (s *EventTypeService) GetPublic(userName, url string) (*entities.PublicEventType, error) {
	et, err := s.Repo.GetActiveByUserNameAndURL(userName, url)
	if err != nil {
		return nil, err
	}
	if et == nil {
		return nil, nil
	}

	host, err := s.Users.GetByID(et.UserID)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, errors.New("event type owner not found")
	}

	days, err := s.Availability.ListForUser(et.UserID)
	if err != nil {
		return nil, err
	}
	var activeDays []string
	for _, d := range days {
		if d.IsActive {
			activeDays = append(activeDays, d.Day)
		}
	}

	public := &entities.PublicEventType{
		ID:                et.ID,
		Title:             et.Title,
		Description:       et.Description,
		Duration:          et.Duration,
		VideoCallSoftware: et.VideoCallSoftware,
		HostName:          host.Name,
		ActiveDays:        activeDays,
	}
	if host.Image.Valid {
		public.HostImage = host.Image.String
	}
	return public, nil
}

func validateEventType(req entities.EventTypeRequest) error {
	if req.Title == "" {
		return errors.New("title cannot be empty")
	}
	if !urlSlugPattern.MatchString(req.URL) {
		return errors.New("url must be a lowercase slug (letters, digits, hyphens)")
	}
	if req.Duration <= 0 {
		return errors.New("duration must be a positive number of minutes")
	}
	if !videoCallProviders[req.VideoCallSoftware] {
		return fmt.Errorf("unsupported video call provider %q", req.VideoCallSoftware)
	}
	return nil
}

func toEventTypeResponse(et *db.EventType) *entities.EventTypeResponse {
	return &entities.EventTypeResponse{
		ID:                et.ID,
		Title:             et.Title,
		URL:               et.URL,
		Description:       et.Description,
		Duration:          et.Duration,
		VideoCallSoftware: et.VideoCallSoftware,
		Active:            et.Active,
	}
}
