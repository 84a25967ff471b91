package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/godilite/pitch-validation/internal/service"
	"github.com/godilite/pitch-validation/pkg/httpserver"
)

// statusClientClosedRequest is reported when the caller went away.
const statusClientClosedRequest = 499

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap turns a handler error into a {success:false, error} response with a
// status derived from the error kind.
func (rt *Router) wrap(op string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		code := statusFor(err)
		fields := []zap.Field{
			zap.String("op", op),
			zap.String("request_id", httpserver.RequestIDFrom(req.Context())),
			zap.Int("status", code),
			zap.Error(err),
		}
		if code >= http.StatusInternalServerError {
			rt.logger.Error("request failed", fields...)
		} else {
			rt.logger.Debug("request rejected", fields...)
		}
		writeError(w, code, messageFor(code, err))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingRequiredField), errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor hides internal detail behind a generic message for 5xx.
func messageFor(code int, err error) string {
	switch code {
	case http.StatusInternalServerError:
		if errors.Is(err, service.ErrComputationFailure) {
			return "score computation failed"
		}
		return "internal server error"
	case http.StatusNotFound:
		return service.ErrNotFound.Error()
	default:
		return err.Error()
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Success: false, Error: msg})
}
