package upload

import (
	"errors"
	"net/http"

	"ficha/internal/service/report"
	"ficha/internal/storage"
)

// Status maps a report pipeline error to a response code and the message
// returned to API clients.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, report.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, storage.ErrLoad):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, report.ErrNoData):
		return http.StatusNotFound, "no data for period and project"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
