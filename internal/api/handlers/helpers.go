package handlers

import (
	"encoding/json"
	"log"
	"milk-delivery-service/internal/api/dto"
	"milk-delivery-service/internal/platform/obs"
	"milk-delivery-service/internal/services"
	"net/http"
)

// writeJSON sends v with the given status. The header is already out when
// encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("req_id=%s encode response failed: method=%s path=%s status=%d err=%v",
			obs.RequestID(r.Context()), r.Method, r.URL.Path, status, err)
	}
}

// writeError sends the bare {"error": msg} body used for 405 and 500.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

// The 404 body repeats the status code next to the message.
func writeNotFound(w http.ResponseWriter, r *http.Request, nf *services.NotFoundError) {
	writeJSON(w, r, http.StatusNotFound, dto.NotFoundResponse{Error: nf.Error(), Status: http.StatusNotFound})
}
