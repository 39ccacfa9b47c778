package app

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/boulder/internal/adapters/seed"
	"github.com/vncsmyrnk/boulder/internal/config"
	"github.com/vncsmyrnk/boulder/internal/core/aggregate"
	"github.com/vncsmyrnk/boulder/internal/core/domain"
	"github.com/vncsmyrnk/boulder/internal/core/ports"
	"github.com/vncsmyrnk/boulder/internal/core/services"
	"github.com/vncsmyrnk/boulder/internal/logging"
)

type Services struct {
	Votes  ports.VoteService
	Roster ports.RosterService
}

func NewServices(cfg *config.Config, store *Store) (*Services, error) {
	policy, err := domain.ParseWeekPolicy(cfg.Poll.WeekPolicy)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	votes := services.NewVoteService(store.Votes, store.Roster, services.VoteServiceOptions{
		Resolver:  domain.NewResolver(policy, loc),
		Formatter: aggregate.NewFormatter(cfg.Poll.LocationPattern, cfg.Poll.LocationReplacement, cfg.Poll.MeetingTime),
		Weekdays:  cfg.Poll.Weekdays,
	})
	roster := services.NewRosterService(store.Roster, store.Batch, cfg.Poll.Weekdays)

	return &Services{Votes: votes, Roster: roster}, nil
}

// SeedRoster loads the configured seed file into empty rosters. Without a
// seed file it does nothing.
func SeedRoster(ctx context.Context, cfg *config.Config, roster ports.RosterService) error {
	if cfg.Poll.SeedFile == "" {
		return nil
	}

	r, err := seed.Load(cfg.Poll.SeedFile)
	if err != nil {
		return err
	}
	if err := roster.Seed(ctx, r.Members, r.Locations); err != nil {
		return fmt.Errorf("failed to seed roster: %w", err)
	}

	logging.Log.WithField("file", cfg.Poll.SeedFile).
		WithField("members", len(r.Members)).
		WithField("locations", len(r.Locations)).
		Info("roster seed applied")
	return nil
}
