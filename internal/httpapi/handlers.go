package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cartsight/scanner/internal/scanner"
	"github.com/cartsight/scanner/internal/service"
)

// scanRequest represents the JSON request body for the /scan endpoint
type scanRequest struct {
	URL string `json:"url"`
}

// scanHandler handles POST requests to /scan
// Accepts a JSON body with a target URL and returns the scan report
func scanHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Only accept POST requests
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
				"error": "Method not allowed",
			})
			return
		}

		// Parse JSON request body
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "Invalid JSON",
			})
			return
		}

		// Validate that URL is provided
		if req.URL == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "URL is required",
			})
			return
		}

		// Run the scan through the service layer
		report, err := svc.ScanURL(r.Context(), req.URL)
		if err != nil {
			// A rejected target is the caller's mistake; everything else
			// already degraded into the report.
			status := http.StatusInternalServerError
			if errors.Is(err, scanner.ErrInvalidTarget) {
				status = http.StatusBadRequest
			}
			writeJSON(w, status, map[string]string{
				"error": err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
