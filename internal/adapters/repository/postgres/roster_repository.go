package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/boulder/internal/core/ports"
)

type rosterRepository struct {
	db *sql.DB
}

func NewRosterRepository(db *sql.DB) ports.RosterRepository {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) ListMembers(ctx context.Context) ([]string, error) {
	return r.list(ctx, "members")
}

func (r *rosterRepository) AddMember(ctx context.Context, name string) error {
	return r.add(ctx, "members", name)
}

func (r *rosterRepository) RemoveMember(ctx context.Context, name string) (int64, error) {
	return r.remove(ctx, "members", name)
}

func (r *rosterRepository) RenameMember(ctx context.Context, oldName, newName string) (int64, error) {
	return r.rename(ctx, "members", oldName, newName)
}

func (r *rosterRepository) ListLocations(ctx context.Context) ([]string, error) {
	return r.list(ctx, "locations")
}

func (r *rosterRepository) AddLocation(ctx context.Context, name string) error {
	return r.add(ctx, "locations", name)
}

func (r *rosterRepository) RemoveLocation(ctx context.Context, name string) (int64, error) {
	return r.remove(ctx, "locations", name)
}

func (r *rosterRepository) RenameLocation(ctx context.Context, oldName, newName string) (int64, error) {
	return r.rename(ctx, "locations", oldName, newName)
}

// table is always one of the two roster table names above.
func (r *rosterRepository) list(ctx context.Context, table string) ([]string, error) {
	query := fmt.Sprintf(`SELECT name FROM %s WHERE active ORDER BY name`, table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return names, nil
}

func (r *rosterRepository) add(ctx context.Context, table, name string) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`, table)
	if _, err := r.db.ExecContext(ctx, query, uuid.New(), name); err != nil {
		return fmt.Errorf("failed to add to %s: %w", table, err)
	}
	return nil
}

func (r *rosterRepository) remove(ctx context.Context, table, name string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE name = $1`, table)
	res, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return 0, fmt.Errorf("failed to remove from %s: %w", table, err)
	}
	return res.RowsAffected()
}

func (r *rosterRepository) rename(ctx context.Context, table, oldName, newName string) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET name = $1 WHERE name = $2`, table)
	res, err := r.db.ExecContext(ctx, query, newName, oldName)
	if err != nil {
		return 0, fmt.Errorf("failed to rename in %s: %w", table, err)
	}
	return res.RowsAffected()
}
