package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/boulder/internal/core/aggregate"
	"github.com/vncsmyrnk/boulder/internal/core/domain"
	"github.com/vncsmyrnk/boulder/internal/core/ports"
)

type voteService struct {
	voteRepo   ports.VoteRepository
	rosterRepo ports.RosterRepository
	resolver   domain.Resolver
	formatter  aggregate.Formatter
	weekdays   []string
	now        func() time.Time
}

type VoteServiceOptions struct {
	Resolver  domain.Resolver
	Formatter aggregate.Formatter
	Weekdays  []string
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewVoteService(voteRepo ports.VoteRepository, rosterRepo ports.RosterRepository, opts VoteServiceOptions) ports.VoteService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &voteService{
		voteRepo:   voteRepo,
		rosterRepo: rosterRepo,
		resolver:   opts.Resolver,
		formatter:  opts.Formatter,
		weekdays:   opts.Weekdays,
		now:        opts.Now,
	}
}

func (s *voteService) ListVotes(ctx context.Context, week string) (*ports.PeriodVotes, error) {
	now := s.now()
	period, err := s.resolver.Resolve(now, week)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	return &ports.PeriodVotes{
		Period:        period,
		Current:       s.resolver.Current(now),
		IsCurrentWeek: s.resolver.IsCurrent(now, period),
		Votes:         votes,
	}, nil
}

func (s *voteService) ListWeeks(ctx context.Context) (*ports.WeeksResult, error) {
	periods, err := s.voteRepo.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}

	current := s.resolver.Current(s.now())
	weeks := make([]domain.PeriodID, 0, len(periods)+1)
	hasCurrent := false
	for _, p := range periods {
		if p == current {
			hasCurrent = true
		}
		weeks = append(weeks, p)
	}
	if !hasCurrent {
		weeks = append(weeks, current)
	}
	domain.SortPeriodsDescending(weeks)

	return &ports.WeeksResult{Weeks: weeks, Current: current}, nil
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.ErrMissingName
	}

	now := s.now()
	period, err := s.resolver.Resolve(now, input.Week)
	if err != nil {
		return err
	}

	vote := domain.Vote{
		ID:        uuid.New(),
		Member:    name,
		Period:    period,
		Weekdays:  input.Weekdays,
		Locations: input.Locations,
		UpdatedAt: now,
	}.Normalize()

	if vote.IsEmpty() {
		if err := s.voteRepo.Delete(ctx, name, period); err != nil {
			return fmt.Errorf("failed to clear empty vote: %w", err)
		}
		return nil
	}

	return s.voteRepo.Upsert(ctx, vote)
}

func (s *voteService) RemoveVote(ctx context.Context, name, week string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrMissingName
	}

	period, err := s.resolver.Resolve(s.now(), week)
	if err != nil {
		return err
	}

	return s.voteRepo.Delete(ctx, name, period)
}

func (s *voteService) Leading(ctx context.Context) (*aggregate.LeadingView, error) {
	now := s.now()
	period := s.resolver.Current(now)

	votes, err := s.voteRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	locations, err := s.rosterRepo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	view := s.formatter.BuildLeading(period, votes, s.weekdays, locations, s.resolver.DisplayDate(now))
	return &view, nil
}

func (s *voteService) Stats(ctx context.Context) (*aggregate.Stats, error) {
	votes, err := s.voteRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := aggregate.ComputeStats(votes, s.resolver.Current(s.now()))
	return &stats, nil
}
