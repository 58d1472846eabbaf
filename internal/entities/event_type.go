package entities

type EventTypeRequest struct {
	Title             string `json:"title"`
	URL               string `json:"url"`
	Description       string `json:"description"`
	Duration          int    `json:"duration"`
	VideoCallSoftware string `json:"video_call_software"`
}

type EventTypeResponse struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	URL               string `json:"url"`
	Description       string `json:"description"`
	Duration          int    `json:"duration"`
	VideoCallSoftware string `json:"video_call_software"`
	Active            bool   `json:"active"`
}

// PublicEventType is the booking-page view of an event type: what an invitee
// sees before picking a date, including which weekdays the host opens at all.
type PublicEventType struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Duration          int      `json:"duration"`
	VideoCallSoftware string   `json:"video_call_software"`
	HostName          string   `json:"host_name"`
	HostImage         string   `json:"host_image,omitempty"`
	ActiveDays        []string `json:"active_days"`
}
