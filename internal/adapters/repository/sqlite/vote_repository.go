package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/boulder/internal/core/domain"
	"github.com/vncsmyrnk/boulder/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

// VoteRepository also implements ports.VoteBatchUpdater.
type VoteRepository interface {
	ports.VoteRepository
	ports.VoteBatchUpdater
}

func NewVoteRepository(db *sql.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) ListByPeriod(ctx context.Context, period domain.PeriodID) ([]domain.Vote, error) {
	query := `
		SELECT id, member_name, weekdays, locations, week_number, updated_at
		FROM votes
		WHERE week_number = ?
		ORDER BY rowid
	`
	rows, err := r.db.QueryContext(ctx, query, string(period))
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func (r *voteRepository) ListAll(ctx context.Context) ([]domain.Vote, error) {
	query := `
		SELECT id, member_name, weekdays, locations, week_number, updated_at
		FROM votes
		ORDER BY rowid
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all votes: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func (r *voteRepository) ListPeriods(ctx context.Context) ([]domain.PeriodID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT week_number FROM votes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}
	defer rows.Close()

	var periods []domain.PeriodID
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		periods = append(periods, domain.PeriodID(p))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weeks: %w", err)
	}

	domain.SortPeriodsDescending(periods)
	return periods, nil
}

func (r *voteRepository) Upsert(ctx context.Context, vote domain.Vote) error {
	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	if vote.UpdatedAt.IsZero() {
		vote.UpdatedAt = time.Now()
	}
	vote = vote.Normalize()

	weekdays, err := encodeList(vote.Weekdays)
	if err != nil {
		return err
	}
	locations, err := encodeList(vote.Locations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO votes (id, member_name, weekdays, locations, week_number, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (member_name, week_number) DO UPDATE
		SET weekdays = excluded.weekdays,
		    locations = excluded.locations,
		    updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		vote.ID.String(), vote.Member, weekdays, locations, string(vote.Period), vote.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, member string, period domain.PeriodID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE member_name = ? AND week_number = ?`, member, string(period))
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

func (r *voteRepository) RenameVoter(ctx context.Context, oldName, newName string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE votes SET member_name = ? WHERE member_name = ?`, newName, oldName)
	if err != nil {
		return 0, fmt.Errorf("failed to rename voter: %w", err)
	}
	return res.RowsAffected()
}

func (r *voteRepository) VoterCollides(ctx context.Context, oldName, newName string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM votes a
			JOIN votes b ON a.week_number = b.week_number
			WHERE a.member_name = ? AND b.member_name = ?
		)
	`, oldName, newName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check voter collision: %w", err)
	}
	return exists, nil
}

func (r *voteRepository) DeleteVoter(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE member_name = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes of voter: %w", err)
	}
	return res.RowsAffected()
}

func (r *voteRepository) RewriteLocations(ctx context.Context, rewrite func([]string) []string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id, weekdays, locations FROM votes WHERE locations <> '[]'`)
	if err != nil {
		return 0, fmt.Errorf("failed to select votes: %w", err)
	}

	type row struct {
		id        string
		weekdays  []string
		locations []string
	}
	var pending []row
	for rows.Next() {
		var id, weekdays, locations string
		if err := rows.Scan(&id, &weekdays, &locations); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan vote: %w", err)
		}
		pending = append(pending, row{id: id, weekdays: decodeList(weekdays), locations: decodeList(locations)})
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return 0, fmt.Errorf("error iterating votes: %w", err)
	}

	var changed int64
	for _, rw := range pending {
		next := domain.Dedupe(rewrite(slices.Clone(rw.locations)))
		if slices.Equal(next, rw.locations) {
			continue
		}
		changed++

		if len(next) == 0 && len(rw.weekdays) == 0 {
			if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE id = ?`, rw.id); err != nil {
				return 0, fmt.Errorf("failed to delete emptied vote: %w", err)
			}
			continue
		}

		encoded, err := encodeList(next)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE votes SET locations = ? WHERE id = ?`, encoded, rw.id); err != nil {
			return 0, fmt.Errorf("failed to update vote locations: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return changed, nil
}

func scanVotes(rows *sql.Rows) ([]domain.Vote, error) {
	votes := []domain.Vote{}
	for rows.Next() {
		var id, member, weekdays, locations, period, updatedAt string
		if err := rows.Scan(&id, &member, &weekdays, &locations, &period, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}

		v := domain.Vote{
			Member:    member,
			Period:    domain.PeriodID(period),
			Weekdays:  decodeList(weekdays),
			Locations: decodeList(locations),
		}
		// Rows written by older deployments may carry other id or time
		// formats; those fields are informational only.
		v.ID, _ = uuid.Parse(id)
		v.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		votes = append(votes, v.Normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode selection: %w", err)
	}
	return string(b), nil
}

// decodeList reads a JSON array of strings; anything else is an empty set.
func decodeList(s string) []string {
	var values []string
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return []string{}
	}
	return domain.Dedupe(values)
}
