package api

import (
	"encoding/json"
	"net/http"

	"calsync/internal/entities"
	"calsync/internal/service"

	"github.com/gorilla/mux"
)

// BookingHandler serves the public booking page endpoints: event type lookup,
// slot listing and booking creation. No authentication; the username/slug pair
// is the whole address.
type BookingHandler struct {
	Bookings   *service.BookingService
	EventTypes *service.EventTypeService
}

func NewBookingHandler(bookings *service.BookingService, eventTypes *service.EventTypeService) *BookingHandler {
	return &BookingHandler{Bookings: bookings, EventTypes: eventTypes}
}

func (h *BookingHandler) GetPublicEventType(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	public, err := h.EventTypes.GetPublic(vars["username"], vars["eventUrl"])
	if err != nil {
		http.Error(w, "Error loading event type", http.StatusInternalServerError)
		return
	}
	if public == nil {
		http.Error(w, "Event type not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(public)
}

func (h *BookingHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "Missing date query parameter", http.StatusBadRequest)
		return
	}

	slots, err := h.Bookings.ListSlots(r.Context(), vars["username"], vars["eventUrl"], date)
	if err != nil {
		http.Error(w, "Error computing available slots", http.StatusInternalServerError)
		return
	}
	if slots == nil {
		http.Error(w, "Event type not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slots)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req entities.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Username = vars["username"]
	req.EventURL = vars["eventUrl"]

	booking, err := h.Bookings.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, err, "Could not create booking")
		return
	}
	if booking == nil {
		http.Error(w, "Event type not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"booking": booking,
		"message": "Meeting booked.",
	})
}
