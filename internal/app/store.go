// Package app wires configuration to stores and services for the binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/boulder/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/boulder/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/boulder/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/boulder/internal/config"
	"github.com/vncsmyrnk/boulder/internal/core/ports"
)

// Store bundles the repositories of one backend.
type Store struct {
	Type   string
	Votes  ports.VoteRepository
	Batch  ports.VoteBatchUpdater
	Roster ports.RosterRepository

	db *sql.DB
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// OpenStore opens the configured backend and makes sure its schema exists.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Database.Type {
	case config.StoreMemory:
		m := memory.NewStore()
		return &Store{Type: config.StoreMemory, Votes: m, Batch: m, Roster: m}, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		votes := sqlite.NewVoteRepository(db)
		return &Store{
			Type:   config.StoreSQLite,
			Votes:  votes,
			Batch:  votes,
			Roster: sqlite.NewRosterRepository(db),
			db:     db,
		}, nil

	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to reach postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		votes := postgres.NewVoteRepository(db)
		return &Store{
			Type:   config.StorePostgres,
			Votes:  votes,
			Batch:  votes,
			Roster: postgres.NewRosterRepository(db),
			db:     db,
		}, nil
	}
	return nil, fmt.Errorf("unknown store type %q", cfg.Database.Type)
}
