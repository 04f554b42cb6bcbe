package discovery

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is an error returned by the discovery service.
type Error struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s type=%q code=%d status=%d", e.Message, e.Type, e.Code, e.StatusCode)
}

// errorResponse contains an Error. It's returned by the discovery service on
// non-200 responses.
type errorResponse struct {
	Error Error `json:"error"`
}

func parseError(resp *http.Response) Error {
	var decoded errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded.Error.Message = fmt.Sprintf("failed to decode error: %v", err)
	}

	decoded.Error.StatusCode = resp.StatusCode
	return decoded.Error
}

// IsAuthError returns true if this error means the configured credentials
// were rejected by the discovery service. Auth errors are fatal for a run:
// retrying the same key can't succeed.
func IsAuthError(err error) bool {
	e, ok := err.(Error)
	if !ok {
		return false
	}
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
