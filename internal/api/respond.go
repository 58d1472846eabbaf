package api

import (
	"errors"
	"net/http"

	apperrors "calsync/internal/errors"
)

// writeError maps a service error onto the response: status-coded errors keep
// their code and message, anything else becomes a 500 with the fallback text.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	http.Error(w, fallback, http.StatusInternalServerError)
}
