// Package memory is a process-local store keyed by (member, period). It
// keeps nothing across restarts.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/vncsmyrnk/boulder/internal/core/domain"
	"github.com/vncsmyrnk/boulder/internal/core/ports"
)

type voteKey struct {
	member string
	period domain.PeriodID
}

type Store struct {
	mu        sync.Mutex
	votes     map[voteKey]domain.Vote
	order     []voteKey
	members   []string
	locations []string
}

var (
	_ ports.VoteRepository   = (*Store)(nil)
	_ ports.VoteBatchUpdater = (*Store)(nil)
	_ ports.RosterRepository = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{votes: make(map[voteKey]domain.Vote)}
}

func (s *Store) ListByPeriod(_ context.Context, period domain.PeriodID) ([]domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes := []domain.Vote{}
	for _, k := range s.order {
		if k.period == period {
			votes = append(votes, clone(s.votes[k]))
		}
	}
	return votes, nil
}

func (s *Store) ListAll(_ context.Context) ([]domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes := make([]domain.Vote, 0, len(s.order))
	for _, k := range s.order {
		votes = append(votes, clone(s.votes[k]))
	}
	return votes, nil
}

func (s *Store) ListPeriods(_ context.Context) ([]domain.PeriodID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var periods []domain.PeriodID
	for _, k := range s.order {
		if !slices.Contains(periods, k.period) {
			periods = append(periods, k.period)
		}
	}
	domain.SortPeriodsDescending(periods)
	return periods, nil
}

func (s *Store) Upsert(_ context.Context, vote domain.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := voteKey{member: vote.Member, period: vote.Period}
	if prev, ok := s.votes[k]; ok {
		vote.ID = prev.ID
	} else {
		s.order = append(s.order, k)
	}
	s.votes[k] = clone(vote.Normalize())
	return nil
}

func (s *Store) Delete(_ context.Context, member string, period domain.PeriodID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(voteKey{member: member, period: period})
	return nil
}

func (s *Store) RenameVoter(_ context.Context, oldName, newName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if period, ok := s.collision(oldName, newName); ok {
		return 0, fmt.Errorf("%q already voted in %s", newName, period)
	}

	var n int64
	for i, k := range s.order {
		if k.member != oldName {
			continue
		}
		v := s.votes[k]
		delete(s.votes, k)
		v.Member = newName
		nk := voteKey{member: newName, period: k.period}
		s.votes[nk] = v
		s.order[i] = nk
		n++
	}
	return n, nil
}

func (s *Store) VoterCollides(_ context.Context, oldName, newName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.collision(oldName, newName)
	return ok, nil
}

// collision expects s.mu to be held.
func (s *Store) collision(oldName, newName string) (domain.PeriodID, bool) {
	for _, k := range s.order {
		if k.member != oldName {
			continue
		}
		if _, taken := s.votes[voteKey{member: newName, period: k.period}]; taken {
			return k.period, true
		}
	}
	return "", false
}

func (s *Store) DeleteVoter(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doomed []voteKey
	for _, k := range s.order {
		if k.member == name {
			doomed = append(doomed, k)
		}
	}
	for _, k := range doomed {
		s.remove(k)
	}
	return int64(len(doomed)), nil
}

func (s *Store) RewriteLocations(_ context.Context, rewrite func([]string) []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	var emptied []voteKey
	for _, k := range s.order {
		v := s.votes[k]
		next := domain.Dedupe(rewrite(slices.Clone(v.Locations)))
		if slices.Equal(next, v.Locations) {
			continue
		}
		v.Locations = next
		s.votes[k] = v
		n++
		if v.IsEmpty() {
			emptied = append(emptied, k)
		}
	}
	for _, k := range emptied {
		s.remove(k)
	}
	return n, nil
}

func (s *Store) ListMembers(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sorted(s.members), nil
}

func (s *Store) AddMember(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.members, name) {
		s.members = append(s.members, name)
	}
	return nil
}

func (s *Store) RemoveMember(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeName(&s.members, name), nil
}

func (s *Store) RenameMember(_ context.Context, oldName, newName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return renameName(s.members, oldName, newName)
}

func (s *Store) ListLocations(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sorted(s.locations), nil
}

func (s *Store) AddLocation(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.locations, name) {
		s.locations = append(s.locations, name)
	}
	return nil
}

func (s *Store) RemoveLocation(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeName(&s.locations, name), nil
}

func (s *Store) RenameLocation(_ context.Context, oldName, newName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return renameName(s.locations, oldName, newName)
}

// remove expects s.mu to be held.
func (s *Store) remove(k voteKey) {
	if _, ok := s.votes[k]; !ok {
		return
	}
	delete(s.votes, k)
	s.order = slices.DeleteFunc(s.order, func(o voteKey) bool { return o == k })
}

func clone(v domain.Vote) domain.Vote {
	v.Weekdays = slices.Clone(v.Weekdays)
	v.Locations = slices.Clone(v.Locations)
	return v
}

func sorted(names []string) []string {
	out := slices.Clone(names)
	if out == nil {
		out = []string{}
	}
	slices.Sort(out)
	return out
}

func removeName(names *[]string, name string) int64 {
	before := len(*names)
	*names = slices.DeleteFunc(*names, func(n string) bool { return n == name })
	return int64(before - len(*names))
}

func renameName(names []string, oldName, newName string) (int64, error) {
	if !slices.Contains(names, oldName) {
		return 0, nil
	}
	if slices.Contains(names, newName) {
		return 0, fmt.Errorf("name %q is already taken", newName)
	}
	for i, name := range names {
		if name == oldName {
			names[i] = newName
		}
	}
	return 1, nil
}
