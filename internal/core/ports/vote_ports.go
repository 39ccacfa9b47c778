package ports

import (
	"context"

	"github.com/vncsmyrnk/boulder/internal/core/aggregate"
	"github.com/vncsmyrnk/boulder/internal/core/domain"
)

// VoteRepository stores one vote per (member, period).
type VoteRepository interface {
	ListByPeriod(ctx context.Context, period domain.PeriodID) ([]domain.Vote, error)
	ListAll(ctx context.Context) ([]domain.Vote, error)
	ListPeriods(ctx context.Context) ([]domain.PeriodID, error)
	// Upsert fully replaces the member's selection for the period.
	Upsert(ctx context.Context, vote domain.Vote) error
	Delete(ctx context.Context, member string, period domain.PeriodID) error
}

// VoteBatchUpdater rewrites the vote records that reference roster names.
// Each row is read, rewritten and stored atomically; rows whose selections
// end up empty are removed.
type VoteBatchUpdater interface {
	RenameVoter(ctx context.Context, oldName, newName string) (int64, error)
	// VoterCollides reports whether newName already voted in a week that
	// oldName voted in too.
	VoterCollides(ctx context.Context, oldName, newName string) (bool, error)
	DeleteVoter(ctx context.Context, name string) (int64, error)
	RewriteLocations(ctx context.Context, rewrite func(locations []string) []string) (int64, error)
}

type VoteInput struct {
	Name      string
	Weekdays  []string
	Locations []string
	Week      string
}

// IsWithdrawal reports whether the input selects nothing, which removes the
// member's vote instead of storing one.
func (in VoteInput) IsWithdrawal() bool {
	return len(domain.Dedupe(in.Weekdays)) == 0 && len(domain.Dedupe(in.Locations)) == 0
}

type PeriodVotes struct {
	Period        domain.PeriodID
	Current       domain.PeriodID
	IsCurrentWeek bool
	Votes         []domain.Vote
}

type WeeksResult struct {
	Weeks   []domain.PeriodID
	Current domain.PeriodID
}

type VoteService interface {
	ListVotes(ctx context.Context, week string) (*PeriodVotes, error)
	ListWeeks(ctx context.Context) (*WeeksResult, error)
	// Vote stores the selection; an empty selection removes the vote.
	Vote(ctx context.Context, input VoteInput) error
	RemoveVote(ctx context.Context, name, week string) error
	Leading(ctx context.Context) (*aggregate.LeadingView, error)
	Stats(ctx context.Context) (*aggregate.Stats, error)
}
