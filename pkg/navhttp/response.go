package navhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/wayfinder"
	"github.com/dmitrymomot/wayfinder/pkg/matcher"
	"github.com/dmitrymomot/wayfinder/pkg/session"
)

// Response is the JSON envelope of every endpoint.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// errorResponse maps err onto a status code and error detail.
func errorResponse(err error) (int, Response) {
	status, code := http.StatusInternalServerError, "internal_error"
	message := err.Error()

	switch {
	case errors.Is(err, ErrMissingTarget), errors.Is(err, ErrInvalidBody), errors.Is(err, ErrNoVisitor):
		status, code = http.StatusBadRequest, "bad_request"
	case matcher.IsNotFound(err):
		status, code = http.StatusNotFound, "route_not_found"
	case errors.Is(err, matcher.ErrMissingParam):
		status, code = http.StatusUnprocessableEntity, "missing_param"
	case wayfinder.IsNavigationFailure(err, wayfinder.FailureAborted):
		status, code = http.StatusConflict, "navigation_aborted"
	case wayfinder.IsNavigationFailure(err, wayfinder.FailureCancelled):
		status, code = http.StatusConflict, "navigation_cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusGatewayTimeout, "navigation_timeout"
	case errors.Is(err, session.ErrDecode):
		status, code = http.StatusConflict, "session_corrupted"
	default:
		message = http.StatusText(status)
	}

	return status, Response{Error: &ErrorDetail{Code: code, Message: message}}
}
