package service

import (
	"testing"

	"calsync/internal/db"
	"calsync/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleRepo struct {
	fakeAvailabilityRepo
	updated []db.Availability
}

func (f *fakeScheduleRepo) UpdateDay(userID string, item db.Availability) error {
	f.updated = append(f.updated, item)
	return nil
}

func TestAvailabilityUpdate(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewAvailabilityService(repo)

	err := svc.Update("u-1", entities.UpdateAvailabilityRequest{Days: []entities.AvailabilityItem{
		{Day: "Monday", FromTime: "09:00", TillTime: "17:00", IsActive: true},
		{Day: "Saturday", FromTime: "10:00", TillTime: "14:00", IsActive: false},
	}})
	require.NoError(t, err)
	require.Len(t, repo.updated, 2)
	assert.Equal(t, "09:00", repo.updated[0].FromTime)
}

func TestAvailabilityUpdate_Rejections(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewAvailabilityService(repo)

	cases := []struct {
		name string
		item entities.AvailabilityItem
	}{
		{"unknown day", entities.AvailabilityItem{Day: "Funday", FromTime: "09:00", TillTime: "17:00"}},
		{"bad time format", entities.AvailabilityItem{Day: "Monday", FromTime: "9am", TillTime: "17:00"}},
		{"inverted window", entities.AvailabilityItem{Day: "Monday", FromTime: "17:00", TillTime: "09:00"}},
		{"empty window", entities.AvailabilityItem{Day: "Monday", FromTime: "09:00", TillTime: "09:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Update("u-1", entities.UpdateAvailabilityRequest{Days: []entities.AvailabilityItem{tc.item}})
			assert.Error(t, err)
		})
	}
	assert.Empty(t, repo.updated, "invalid requests must not touch the store")
}
