package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/jwulff/artstudio-go/internal/assistant"
	"github.com/jwulff/artstudio-go/internal/domain"
	"github.com/jwulff/artstudio-go/internal/storage"
)

// errBadRequest marks malformed request bodies and parameters.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// statusOf maps a command error to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidCanvas),
		errors.Is(err, assistant.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLayerNotFound), storage.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLastLayerProtected),
		errors.Is(err, domain.ErrStrokeInProgress),
		errors.Is(err, domain.ErrNoCanvas):
		return http.StatusConflict
	case domain.IsOutOfBounds(err):
		return http.StatusUnprocessableEntity
	case assistant.IsServiceError(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError renders err as {"error": "..."}. Internal errors are logged
// and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
		msg = "internal error"
	} else {
		s.log.WithError(err).WithField("path", r.URL.Path).Debug("Request rejected")
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

// decode reads a JSON body into v.
func decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}
