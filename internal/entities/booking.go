package entities

import "time"

type CreateBookingRequest struct {
	Username    string `json:"username"`
	EventURL    string `json:"event_url"`
	InviteeName string `json:"invitee_name"`
	InviteeEmail string `json:"invitee_email"`
	Date        string `json:"date"` // "yyyy-MM-dd"
	Time        string `json:"time"` // "HH:mm", a slot start from the slot listing
}

type BookingResponse struct {
	Code         string    `json:"code"`
	EventTitle   string    `json:"event_title"`
	InviteeName  string    `json:"invitee_name"`
	InviteeEmail string    `json:"invitee_email"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type SlotsResponse struct {
	Date     string   `json:"date"`
	Duration int      `json:"duration"`
	Slots    []string `json:"slots"`
}
