package entities

type AvailabilityItem struct {
	Day      string `json:"day"`
	FromTime string `json:"from_time"`
	TillTime string `json:"till_time"`
	IsActive bool   `json:"is_active"`
}

type UpdateAvailabilityRequest struct {
	Days []AvailabilityItem `json:"days"`
}
