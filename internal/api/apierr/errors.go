package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orbitwise/fdsaas/internal/model"
	"github.com/orbitwise/fdsaas/internal/services/auth"
)

// APIError represents a transport-level error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Fault is the body of a domain failure. The request itself was well-formed
// and authenticated, so it is reported with a 200 status and this envelope
// rather than an HTTP error.
type Fault struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeStaleRequest       = "STALE_REQUEST"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeSessionExpired     = "SESSION_EXPIRED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Domain fault labels
const (
	FaultDuplicateUser = "duplicate_user"
	FaultUnknownUser   = "unknown_user"
	FaultInvalidTLE    = "invalid_tle"
	FaultOutOfRange    = "propagation_out_of_range"
	FaultTimeout       = "compute_timeout"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes the response for an error. Domain failures get a 200
// with a fault envelope; everything else gets an HTTP error status.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if fault, ok := toFault(err); ok {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(fault)
		return
	}

	he := toHTTPError(err)
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toFault maps domain errors to their fault envelope
func toFault(err error) (Fault, bool) {
	switch {
	case errors.Is(err, model.ErrDuplicateUser):
		return Fault{FaultDuplicateUser, "Username is already registered"}, true
	case errors.Is(err, model.ErrUserNotFound):
		return Fault{FaultUnknownUser, "No such user"}, true
	case errors.Is(err, model.ErrInvalidTLE):
		return Fault{FaultInvalidTLE, "Element set failed structural validation"}, true
	case errors.Is(err, model.ErrPropagationOutOfRange):
		return Fault{FaultOutOfRange, "Requested window cannot be propagated"}, true
	case errors.Is(err, model.ErrComputeTimeout):
		return Fault{FaultTimeout, "Computation exceeded its time budget"}, true
	default:
		return Fault{}, false
	}
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, auth.ErrReplayOrStale):
		return &httpError{http.StatusUnauthorized, APIError{CodeStaleRequest, "Request timestamp is outside the freshness window"}}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrSessionExpired):
		return &httpError{http.StatusUnauthorized, APIError{CodeSessionExpired, "Session has expired"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or revoked session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
