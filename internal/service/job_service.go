package service

import (
	"fmt"
	"log"
	"time"

	"calsync/internal/repository"
)

const reminderHorizon = time.Hour

type JobService struct {
	Repo   *repository.JobRepository
	Sender *SenderService
}

func NewJobService(repo *repository.JobRepository, sender *SenderService) *JobService {
	return &JobService{Repo: repo, Sender: sender}
}

// CompletePastBookings finds confirmed bookings whose end time has passed and
// updates their status to "completed".
func (s *JobService) CompletePastBookings() error {
	log.Println("Cron Job: Checking for bookings to mark as 'completed'...")

	bookingIDs, err := s.Repo.GetConfirmedBookingIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past end time: %w", err)
	}

	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No confirmed bookings found past their end time.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'. IDs: %v", len(bookingIDs), bookingIDs)

	if err := s.Repo.UpdateBookingStatuses(bookingIDs, statusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	return nil
}

// SendUpcomingReminders mails invitees (and texts hosts with a phone on file)
// for confirmed bookings starting within the next hour, then flips their
// reminder flag. A booking whose email fails stays unflagged and is retried on
// the next pass.
func (s *JobService) SendUpcomingReminders() error {
	infos, err := s.Repo.GetBookingsNeedingReminder(reminderHorizon)
	if err != nil {
		return fmt.Errorf("cron job: failed to get bookings needing reminder: %w", err)
	}
	if len(infos) == 0 {
		return nil
	}

	var sent []int
	for _, info := range infos {
		if err := s.Sender.SendReminderEmail(info); err != nil {
			log.Printf("Cron Job: reminder email for booking %s failed: %v", info.Code, err)
			continue
		}
		s.Sender.SendReminderSMS(info)
		sent = append(sent, info.BookingID)
	}

	if err := s.Repo.MarkRemindersSent(sent); err != nil {
		return fmt.Errorf("cron job: failed to mark reminders sent: %w", err)
	}
	log.Printf("Cron Job: sent %d of %d due reminders.", len(sent), len(infos))
	return nil
}
