package utils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/maruel/geoloc/internal/errors"
)

// RespondJSON sends a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Status is already written to client, log only
		slog.Error("Failed to encode response", "err", err)
	}
}

// RespondError sends an error JSON response. Errors that do not carry a
// status are reported as internal errors.
func RespondError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorCode := apierrors.ErrInternal
	var details map[string]any
	var ews apierrors.ErrorWithStatus
	if errors.As(err, &ews) {
		statusCode = ews.StatusCode()
		errorCode = ews.Code()
		details = ews.Details()
	}
	RespondErrorCode(w, statusCode, errorCode, err.Error(), details)
}

// RespondErrorCode writes a detailed error response as JSON with code and details.
func RespondErrorCode(w http.ResponseWriter, statusCode int, code apierrors.ErrorCode, message string, details map[string]any) {
	response := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	}
	if len(details) > 0 {
		response["details"] = details
	}
	RespondJSON(w, statusCode, response)
}
