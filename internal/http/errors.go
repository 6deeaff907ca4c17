// Package httpapi serves the product service simulator over HTTP.
package httpapi

import (
	"net/http"
)

// errorBody is the payload of every non-2xx response. Code is a stable
// snake_case identifier the product service client surfaces to the editor.
type errorBody struct {
	Code      string `json:"error"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteJSONError writes an error payload with status. The request id set by
// WithRequestID is echoed so a failed save can be matched to its access log.
func WriteJSONError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, errorBody{
		Code:      code,
		Details:   details,
		RequestID: w.Header().Get("X-Request-Id"),
	})
}
