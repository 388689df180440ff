// Response helpers shared by every handler package. Errors always go out as
// the apperror JSON envelope; success payloads are plain JSON.
package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/wiryawan46/instagram-clone-be/apperror"
)

// errorDetails controls whether 5xx responses expose the underlying error
// message. It is set once at startup from the server configuration and read
// only afterwards; production builds leave it off.
var errorDetails bool

// SetErrorDetails enables or disables error detail in responses. Call it once
// during startup, before the server begins accepting requests.
func SetErrorDetails(enabled bool) {
	errorDetails = enabled
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"success":false,"error":"Failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// Recoverer turns handler panics into the standard error envelope instead of
// an empty 500. http.ErrAbortHandler keeps its sentinel meaning and is
// re-raised for the server to suppress.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				log.Printf("Panic: %+v", rvr)
				WriteError(w, r, apperror.NewInternalError("internal server error", nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WriteError converts any error into the standardized apperror envelope and
// writes it. Errors that are not AppErrors are wrapped as internal errors so
// nothing reaches the client unclassified.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	writeJSON(w, appErr.StatusCode(), appErr.ToResponse(errorDetails))
}
