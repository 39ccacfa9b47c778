package aggregate

import (
	"slices"

	"github.com/vncsmyrnk/boulder/internal/core/domain"
)

// Points is one leaderboard entry.
type Points struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats is the leaderboard over all closed periods.
type Stats struct {
	TopClimbers  []Points `json:"topClimbers"`
	TopLocations []Points `json:"topLocations"`
}

// Outcome is the scoring result of a single closed period.
type Outcome struct {
	Period           domain.PeriodID
	WinningDays      []string
	WinningLocations []string
	// Climbers voted for at least one winning day.
	Climbers []string
}

// GroupByPeriod splits votes by period, returning the periods in
// chronological order alongside the groups.
func GroupByPeriod(votes []domain.Vote) ([]domain.PeriodID, map[domain.PeriodID][]domain.Vote) {
	groups := make(map[domain.PeriodID][]domain.Vote)
	var periods []domain.PeriodID
	for _, v := range votes {
		if _, ok := groups[v.Period]; !ok {
			periods = append(periods, v.Period)
		}
		groups[v.Period] = append(groups[v.Period], v)
	}
	slices.SortStableFunc(periods, func(a, b domain.PeriodID) int {
		return a.Compare(b)
	})
	return periods, groups
}

// ScorePeriod decides the winners of one period. The winning days are the
// day leaders among all votes; the winning locations are the location leaders
// among only the votes that picked a winning day.
func ScorePeriod(period domain.PeriodID, votes []domain.Vote) Outcome {
	out := Outcome{
		Period:           period,
		WinningDays:      []string{},
		WinningLocations: []string{},
		Climbers:         []string{},
	}

	out.WinningDays = Keys(TallyVotes(votes, nil, nil).LeadingDays())
	if len(out.WinningDays) == 0 {
		return out
	}

	var winners []domain.Vote
	for _, v := range votes {
		v = v.Normalize()
		if !selectsAny(v.Weekdays, out.WinningDays) {
			continue
		}
		winners = append(winners, v)
		out.Climbers = append(out.Climbers, v.Member)
	}
	out.Climbers = domain.Dedupe(out.Climbers)

	out.WinningLocations = Keys(TallyVotes(winners, nil, nil).LeadingLocations())
	return out
}

// ComputeStats scores every period except current and accumulates one point
// per winning period for each climber and each winning location.
func ComputeStats(votes []domain.Vote, current domain.PeriodID) Stats {
	periods, groups := GroupByPeriod(votes)

	climbers := newLeaderboard()
	locations := newLeaderboard()
	for _, p := range periods {
		if p == current {
			continue
		}
		out := ScorePeriod(p, groups[p])
		for _, name := range out.Climbers {
			climbers.award(name)
		}
		for _, name := range out.WinningLocations {
			locations.award(name)
		}
	}

	return Stats{
		TopClimbers:  climbers.ranked(),
		TopLocations: locations.ranked(),
	}
}

func selectsAny(selection, winners []string) bool {
	for _, s := range selection {
		if domain.Contains(winners, s) {
			return true
		}
	}
	return false
}

type leaderboard struct {
	order  []string
	points map[string]int
}

func newLeaderboard() *leaderboard {
	return &leaderboard{points: make(map[string]int)}
}

func (l *leaderboard) award(name string) {
	if _, ok := l.points[name]; !ok {
		l.order = append(l.order, name)
	}
	l.points[name]++
}

// ranked sorts by points descending; equal points keep encounter order.
func (l *leaderboard) ranked() []Points {
	out := make([]Points, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, Points{Name: name, Count: l.points[name]})
	}
	slices.SortStableFunc(out, func(a, b Points) int {
		return b.Count - a.Count
	})
	return out
}
