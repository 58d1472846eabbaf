package api

import (
	"encoding/json"
	"net/http"

	"calsync/internal/auth"
	"calsync/internal/entities"
	"calsync/internal/service"

	"github.com/gorilla/mux"
)

// DashboardHandler serves the authenticated host endpoints: profile,
// availability, event types and bookings.
type DashboardHandler struct {
	Users        *service.UserService
	Availability *service.AvailabilityService
	EventTypes   *service.EventTypeService
	Bookings     *service.BookingService
}

func NewDashboardHandler(users *service.UserService, availability *service.AvailabilityService, eventTypes *service.EventTypeService, bookings *service.BookingService) *DashboardHandler {
	return &DashboardHandler{
		Users:        users,
		Availability: availability,
		EventTypes:   eventTypes,
		Bookings:     bookings,
	}
}

type ProfileResponse struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	UserName          string `json:"user_name,omitempty"`
	Image             string `json:"image,omitempty"`
	CalendarConnected bool   `json:"calendar_connected"`
	GrantEmail        string `json:"grant_email,omitempty"`
}

func (h *DashboardHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetProfile(auth.UserID(r))
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	resp := ProfileResponse{
		Email:             user.Email,
		Name:              user.Name,
		UserName:          user.UserName.String,
		Image:             user.Image.String,
		CalendarConnected: len(user.GrantToken) > 0,
		GrantEmail:        user.GrantEmail.String,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *DashboardHandler) ClaimUserName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"user_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Users.ClaimUserName(auth.UserID(r), req.UserName); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Username updated"})
}

func (h *DashboardHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Users.UpdateProfile(auth.UserID(r), req.Name, req.Image); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Profile updated"})
}

func (h *DashboardHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	items, err := h.Availability.ListForUser(auth.UserID(r))
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *DashboardHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Availability.Update(auth.UserID(r), req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Availability updated"})
}

func (h *DashboardHandler) CreateEventType(w http.ResponseWriter, r *http.Request) {
	var req entities.EventTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.EventTypes.Create(auth.UserID(r), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *DashboardHandler) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.EventTypes.ListForUser(auth.UserID(r))
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types)
}

func (h *DashboardHandler) UpdateEventType(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req entities.EventTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.EventTypes.Update(auth.UserID(r), id, req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Event type updated"})
}

func (h *DashboardHandler) ToggleEventType(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.EventTypes.SetActive(auth.UserID(r), id, req.Active); err != nil {
		http.Error(w, "Could not update event type", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Event type updated"})
}

func (h *DashboardHandler) DeleteEventType(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.EventTypes.Delete(auth.UserID(r), id); err != nil {
		http.Error(w, "Could not delete event type", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Event type deleted"})
}

func (h *DashboardHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.ListBookings(auth.UserID(r))
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

func (h *DashboardHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Bookings.CancelBooking(r.Context(), auth.UserID(r), code); err != nil {
		writeError(w, err, "Could not cancel booking")
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Booking canceled"})
}
