package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/boulder/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/boulder/internal/core/aggregate"
	"github.com/vncsmyrnk/boulder/internal/core/domain"
	"github.com/vncsmyrnk/boulder/internal/core/ports"
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func newTestVoteService(t *testing.T, store *memory.Store) (ports.VoteService, *clock) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Vienna")
	require.NoError(t, err)

	// Tuesday of 2025-10.
	c := &clock{t: time.Date(2025, 3, 4, 12, 0, 0, 0, loc)}
	svc := NewVoteService(store, store, VoteServiceOptions{
		Resolver:  domain.NewResolver(domain.PolicyRollover, loc),
		Formatter: aggregate.NewFormatter("boulderbar", "BB", "18:30"),
		Weekdays:  weekdays,
		Now:       c.Now,
	})
	return svc, c
}

func TestVoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, _ := newTestVoteService(t, store)

	err := svc.Vote(ctx, ports.VoteInput{
		Name:      "Kim",
		Weekdays:  []string{"Monday", "Monday", "Thursday"},
		Locations: []string{"Blockfabrik"},
	})
	require.NoError(t, err)

	got, err := svc.ListVotes(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodID("2025-10"), got.Period)
	assert.True(t, got.IsCurrentWeek)
	require.Len(t, got.Votes, 1)
	assert.Equal(t, "Kim", got.Votes[0].Member)
	assert.Equal(t, []string{"Monday", "Thursday"}, got.Votes[0].Weekdays)
	assert.Equal(t, []string{"Blockfabrik"}, got.Votes[0].Locations)
}

func TestVoteResubmissionReplaces(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, _ := newTestVoteService(t, store)

	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "Kim", Weekdays: []string{"Monday"}, Locations: []string{"X"}}))
	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "Kim", Weekdays: []string{"Friday"}}))

	got, err := svc.ListVotes(ctx, "")
	require.NoError(t, err)
	require.Len(t, got.Votes, 1)
	assert.Equal(t, []string{"Friday"}, got.Votes[0].Weekdays)
	assert.Empty(t, got.Votes[0].Locations)
}

func TestEmptyVoteDeletes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, _ := newTestVoteService(t, store)

	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "Kim", Weekdays: []string{"Monday"}}))
	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "Kim"}))

	got, err := svc.ListVotes(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, got.Votes)

	periods, err := store.ListPeriods(ctx)
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestVoteExplicitWeek(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, _ := newTestVoteService(t, store)

	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "Kim", Weekdays: []string{"Monday"}, Week: "2025-08"}))

	got, err := svc.ListVotes(ctx, "2025-8")
	require.NoError(t, err)
	assert.False(t, got.IsCurrentWeek)
	assert.Equal(t, domain.PeriodID("2025-10"), got.Current)
	assert.Len(t, got.Votes, 1)

	current, err := svc.ListVotes(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, current.Votes)

	require.NoError(t, svc.RemoveVote(ctx, "Kim", "2025-8"))
	got, err = svc.ListVotes(ctx, "2025-8")
	require.NoError(t, err)
	assert.Empty(t, got.Votes)
}

func TestVoteValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestVoteService(t, memory.NewStore())

	err := svc.Vote(ctx, ports.VoteInput{Name: "  ", Weekdays: []string{"Monday"}})
	assert.ErrorIs(t, err, domain.ErrMissingName)

	err = svc.Vote(ctx, ports.VoteInput{Name: "Kim", Week: "next"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = svc.ListVotes(ctx, "2025")
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	assert.ErrorIs(t, svc.RemoveVote(ctx, "", ""), domain.ErrMissingName)
}

func TestListWeeksIncludesCurrent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, _ := newTestVoteService(t, store)

	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "Kim", Weekdays: []string{"Monday"}, Week: "2025-9"}))
	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "Kim", Weekdays: []string{"Monday"}, Week: "2024-50"}))

	weeks, err := svc.ListWeeks(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodID("2025-10"), weeks.Current)
	assert.Equal(t, []domain.PeriodID{"2025-10", "2025-9", "2024-50"}, weeks.Weeks)
}

func TestLeading(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, _ := newTestVoteService(t, store)

	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "A", Weekdays: []string{"Monday"}, Locations: []string{"boulderbar Seestadt"}}))
	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "B", Weekdays: []string{"Monday", "Tuesday"}}))
	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "C", Weekdays: []string{"Tuesday"}}))

	view, err := svc.Leading(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodID("2025-10"), view.Period)
	assert.Equal(t, []string{"A", "B", "C"}, view.Going)
	assert.Equal(t, "🧗 MON 3.3./TUE 4.3. 18:30 @ BB Seestadt\n👥 A, B, C", view.Compact)
}

func TestLeadingAfterFridayRolloverShowsNextWeek(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, c := newTestVoteService(t, store)
	c.t = time.Date(2025, 3, 7, 21, 0, 0, 0, c.t.Location())

	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "A", Weekdays: []string{"Monday"}}))

	view, err := svc.Leading(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodID("2025-11"), view.Period)
	require.Len(t, view.Days, 1)
	assert.Equal(t, "10.3.", view.Days[0].Date)
	assert.Equal(t, "🧗 MON 10.3. 18:30\n👥 A", view.Compact)

	c.t = time.Date(2025, 3, 7, 19, 59, 0, 0, c.t.Location())
	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "B", Weekdays: []string{"Friday"}}))

	view, err = svc.Leading(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodID("2025-10"), view.Period)
	assert.Equal(t, "7.3.", view.Days[0].Date)
}

func TestStatsExcludesCurrentPeriod(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, c := newTestVoteService(t, store)

	require.NoError(t, svc.Vote(ctx, ports.VoteInput{Name: "A", Weekdays: []string{"Monday"}, Locations: []string{"X"}}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats.TopClimbers)

	// Saturday: 2025-10 is closed now.
	c.t = c.t.AddDate(0, 0, 4)
	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []aggregate.Points{{Name: "A", Count: 1}}, stats.TopClimbers)
	assert.Equal(t, []aggregate.Points{{Name: "X", Count: 1}}, stats.TopLocations)
}

type failingStore struct {
	*memory.Store
}

var errStore = errors.New("connection refused")

func (failingStore) ListAll(context.Context) ([]domain.Vote, error) { return nil, errStore }

func (failingStore) Upsert(context.Context, domain.Vote) error { return errStore }

func TestStoreFailuresSurface(t *testing.T) {
	ctx := context.Background()
	store := failingStore{memory.NewStore()}
	svc := NewVoteService(store, store, VoteServiceOptions{Resolver: domain.NewResolver(domain.PolicyRollover, nil)})

	_, err := svc.Stats(ctx)
	assert.ErrorIs(t, err, errStore)

	err = svc.Vote(ctx, ports.VoteInput{Name: "Kim", Weekdays: []string{"Monday"}})
	assert.ErrorIs(t, err, errStore)
}
