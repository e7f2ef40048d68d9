package api

import (
	"milk-delivery-service/internal/api/handlers"
	"milk-delivery-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(store ports.RecordStore) http.Handler {
	mux := http.NewServeMux()

	deliveries := &handlers.DeliveryHandler{Store: store}

	mux.HandleFunc("/health", handlers.Health)
	// The serverless path and the standalone path serve the same handler.
	mux.Handle("/deliveries", deliveries)
	mux.Handle("/api/deliveries", deliveries)

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(mux)))
}
