package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vncsmyrnk/boulder/internal/core/domain"
	"github.com/vncsmyrnk/boulder/internal/logging"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Log.WithError(err).Error("failed to encode response")
	}
}

// writeError reports validation failures as 400 and anything else as 500
// with the error text unchanged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if isBadRequest(err) {
		status = http.StatusBadRequest
	} else {
		logging.Log.WithError(err).
			WithField("method", r.Method).
			WithField("path", r.URL.Path).
			Error("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func isBadRequest(err error) bool {
	return errors.Is(err, domain.ErrMissingName) ||
		errors.Is(err, domain.ErrInvalidPeriod) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrSameName) ||
		errors.Is(err, domain.ErrVoteConflict) ||
		errors.Is(err, errInvalidBody)
}

var errInvalidBody = errors.New("invalid request body")

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}
