package common

import (
	"net/http"

	"blog_backend/internal/platform/logger"

	"github.com/goccy/go-json"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithServiceError logs unexpected failures and writes the mapped status.
func RespondWithServiceError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)
	if code >= http.StatusInternalServerError {
		logger.Errorf("request failed: %v", err)
	}
	RespondWithError(w, code, PublicMessage(err))
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
