package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/cartsight/scanner/internal/logging"
	"github.com/cartsight/scanner/internal/service"
)

// NewServer creates and configures a new HTTP server
func NewServer(addr string, logger *logging.Logger, svc *service.Service) *http.Server {
	mux := http.NewServeMux()

	// Register the health endpoint
	mux.HandleFunc("/health", healthHandler)

	// Register the scan endpoint
	mux.HandleFunc("/scan", scanHandler(svc))

	// Wrap the mux with logging middleware
	handler := loggingMiddleware(logger, mux)

	return &http.Server{
		Addr:    addr,
		Handler: handler,
	}
}

// healthHandler handles GET requests to /health
// Returns a simple JSON response indicating the service is healthy
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "checkoutscan-api",
	})
}

// writeJSON is a helper function to write JSON responses
// It sets the correct Content-Type header and encodes the data as JSON
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	// If encoding fails, the error is ignored (acceptable for this simple case)
	json.NewEncoder(w).Encode(data)
}
