package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vncsmyrnk/boulder/internal/core/domain"
)

func periodVote(p domain.PeriodID, member string, days []string, locations ...string) domain.Vote {
	v := vote(member, days, locations...)
	v.Period = p
	return v
}

func TestScorePeriodGatesLocationsOnWinningDay(t *testing.T) {
	votes := []domain.Vote{
		periodVote("2025-1", "A", []string{"Monday"}, "X"),
		periodVote("2025-1", "B", []string{"Monday"}, "Y"),
		periodVote("2025-1", "C", []string{"Tuesday"}, "X"),
	}

	out := ScorePeriod("2025-1", votes)

	assert.Equal(t, []string{"Monday"}, out.WinningDays)
	assert.Equal(t, []string{"A", "B"}, out.Climbers)
	assert.Equal(t, []string{"X", "Y"}, out.WinningLocations)
}

func TestScorePeriodNoDayVotes(t *testing.T) {
	votes := []domain.Vote{periodVote("2025-1", "A", nil, "X")}

	out := ScorePeriod("2025-1", votes)

	assert.Empty(t, out.WinningDays)
	assert.Empty(t, out.Climbers)
	assert.Empty(t, out.WinningLocations)
}

func TestScorePeriodWinnersWithoutLocations(t *testing.T) {
	votes := []domain.Vote{
		periodVote("2025-1", "A", []string{"Monday"}),
		periodVote("2025-1", "B", []string{"Tuesday"}, "X"),
		periodVote("2025-1", "C", []string{"Monday"}),
	}

	out := ScorePeriod("2025-1", votes)

	assert.Equal(t, []string{"A", "C"}, out.Climbers)
	assert.Empty(t, out.WinningLocations)
}

func TestComputeStats(t *testing.T) {
	votes := []domain.Vote{
		// 2025-2 listed first to check periods are scored chronologically.
		periodVote("2025-2", "B", []string{"Wednesday"}, "Y"),
		periodVote("2025-2", "C", []string{"Wednesday", "Friday"}, "Y", "X"),
		periodVote("2025-2", "A", []string{"Monday"}, "X"),

		periodVote("2025-1", "A", []string{"Monday"}, "X"),
		periodVote("2025-1", "B", []string{"Monday", "Tuesday"}, "Y"),
		periodVote("2025-1", "C", []string{"Tuesday"}, "X"),
		periodVote("2025-1", "D", []string{"Thursday"}, "X"),

		// In progress, never scored.
		periodVote("2025-3", "D", []string{"Monday"}, "Z"),
	}

	stats := ComputeStats(votes, "2025-3")

	// 2025-1: Monday/Tuesday tie, A B C climb, X=2 Y=1 -> X.
	// 2025-2: Wednesday, B C climb, Y=2 X=1 -> Y.
	assert.Equal(t, []Points{
		{Name: "B", Count: 2},
		{Name: "C", Count: 2},
		{Name: "A", Count: 1},
	}, stats.TopClimbers)
	assert.Equal(t, []Points{
		{Name: "X", Count: 1},
		{Name: "Y", Count: 1},
	}, stats.TopLocations)
}

func TestComputeStatsOnePointRegardlessOfSelections(t *testing.T) {
	votes := []domain.Vote{
		periodVote("2025-1", "A", []string{"Monday", "Tuesday"}, "X", "Y", "Z"),
		periodVote("2025-1", "B", []string{"Monday", "Tuesday"}),
	}

	stats := ComputeStats(votes, "2025-9")

	assert.Equal(t, []Points{{Name: "A", Count: 1}, {Name: "B", Count: 1}}, stats.TopClimbers)
	assert.Equal(t, []Points{{Name: "X", Count: 1}, {Name: "Y", Count: 1}, {Name: "Z", Count: 1}}, stats.TopLocations)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, "2025-1")

	assert.NotNil(t, stats.TopClimbers)
	assert.Empty(t, stats.TopClimbers)
	assert.Empty(t, stats.TopLocations)
}

func TestGroupByPeriod(t *testing.T) {
	votes := []domain.Vote{
		periodVote("2025-10", "A", nil),
		periodVote("2024-52", "B", nil),
		periodVote("2025-9", "C", nil),
		periodVote("2025-10", "D", nil),
	}

	periods, groups := GroupByPeriod(votes)

	assert.Equal(t, []domain.PeriodID{"2024-52", "2025-9", "2025-10"}, periods)
	assert.Len(t, groups["2025-10"], 2)
}
