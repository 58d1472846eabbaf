package service

import (
	"fmt"

	"calsync/internal/db"
	"calsync/internal/entities"
	"calsync/internal/repository"
	"calsync/internal/utils"
)

type AvailabilityService struct {
	Repo repository.AvailabilityRepository
}

func NewAvailabilityService(repo repository.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{Repo: repo}
}

func (s *AvailabilityService) ListForUser(userID string) ([]entities.AvailabilityItem, error) {
	rows, err := s.Repo.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]entities.AvailabilityItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.AvailabilityItem{
			Day:      row.Day,
			FromTime: row.FromTime,
			TillTime: row.TillTime,
			IsActive: row.IsActive,
		})
	}
	return items, nil
}

// Update validates and applies the dashboard's weekly schedule. Windows are
// wall-clock "HH:mm" pairs; fromTime must precede tillTime so the slot
// generator downstream never sees an inverted window from our own store.
func (s *AvailabilityService) Update(userID string, req entities.UpdateAvailabilityRequest) error {
	for _, item := range req.Days {
		if !utils.IsValidDay(item.Day) {
			return fmt.Errorf("unknown day %q", item.Day)
		}
		if !utils.IsValidTimeOfDay(item.FromTime) || !utils.IsValidTimeOfDay(item.TillTime) {
			return fmt.Errorf("times for %s must be HH:mm", item.Day)
		}
		if item.FromTime >= item.TillTime {
			return fmt.Errorf("from_time must be before till_time on %s", item.Day)
		}
	}

	for _, item := range req.Days {
		err := s.Repo.UpdateDay(userID, db.Availability{
			Day:      item.Day,
			FromTime: item.FromTime,
			TillTime: item.TillTime,
			IsActive: item.IsActive,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
