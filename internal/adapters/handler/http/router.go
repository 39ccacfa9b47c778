package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Votes       *VoteHandler
	Roster      *RosterHandler
	Health      *HealthHandler
	Metrics     *Metrics
	CORSOrigins []string
}

func NewHandler(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Get("/health", cfg.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", cfg.Roster.Config)
		r.Post("/addMember", cfg.Roster.AddMember)
		r.Post("/removeMember", cfg.Roster.RemoveMember)
		r.Post("/renameMember", cfg.Roster.RenameMember)
		r.Post("/addLocation", cfg.Roster.AddLocation)
		r.Post("/removeLocation", cfg.Roster.RemoveLocation)
		r.Post("/renameLocation", cfg.Roster.RenameLocation)

		r.Get("/votes", cfg.Votes.ListVotes)
		r.Get("/weeks", cfg.Votes.ListWeeks)
		r.Post("/vote", cfg.Votes.Vote)
		r.Post("/removeVote", cfg.Votes.RemoveVote)
		r.Get("/leading", cfg.Votes.Leading)
		r.Get("/stats", cfg.Votes.Stats)
	})

	return r
}
