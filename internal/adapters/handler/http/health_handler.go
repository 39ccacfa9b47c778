package http

import (
	"context"
	"net/http"
	"time"
)

type HealthHandler struct {
	store string
	ping  func(ctx context.Context) error
	now   func() time.Time
}

// NewHealthHandler reports store as the "db" field. ping may be nil.
func NewHealthHandler(store string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{store: store, ping: ping, now: time.Now}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, healthResponse{
		Status:    status,
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		DB:        h.store,
	})
}
