package api

import (
	"encoding/json"
	"log"
	"net/http"

	"calsync/internal/auth"
	"calsync/internal/service"
)

// OAuthHandler drives the calendar connection flow: hand the host the provider
// consent URL, then exchange the callback code for a stored grant.
type OAuthHandler struct {
	Calendar *service.GoogleCalendarService
	Users    *service.UserService
}

func NewOAuthHandler(calendar *service.GoogleCalendarService, users *service.UserService) *OAuthHandler {
	return &OAuthHandler{Calendar: calendar, Users: users}
}

func (h *OAuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	url := h.Calendar.AuthCodeURL(auth.UserID(r))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"authorization_url": url})
}

func (h *OAuthHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "No authorization code received from calendar provider", http.StatusBadRequest)
		return
	}

	token, grantEmail, err := h.Calendar.ExchangeCode(r.Context(), code)
	if err != nil {
		log.Printf("Error exchanging calendar authorization code: %v", err)
		http.Error(w, "Could not connect calendar", http.StatusBadGateway)
		return
	}

	if err := h.Users.StoreGrant(auth.UserID(r), grantEmail, token); err != nil {
		log.Printf("Error storing calendar grant: %v", err)
		http.Error(w, "Could not store calendar grant", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":     "Calendar connected",
		"grant_email": grantEmail,
	})
}
