package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vncsmyrnk/boulder/internal/core/domain"
	"github.com/vncsmyrnk/boulder/internal/core/ports"
)

// rosterService keeps the name lists and the votes that reference them in
// step: the roster entry changes first, then every dependent vote record is
// rewritten through the batch updater.
type rosterService struct {
	rosterRepo ports.RosterRepository
	votes      ports.VoteBatchUpdater
	weekdays   []string
}

func NewRosterService(rosterRepo ports.RosterRepository, votes ports.VoteBatchUpdater, weekdays []string) ports.RosterService {
	return &rosterService{
		rosterRepo: rosterRepo,
		votes:      votes,
		weekdays:   weekdays,
	}
}

func (s *rosterService) Config(ctx context.Context) (*ports.Roster, error) {
	members, err := s.rosterRepo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.rosterRepo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.Roster{
		Members:   members,
		Locations: locations,
		Weekdays:  s.weekdays,
	}, nil
}

func (s *rosterService) AddMember(ctx context.Context, name string) ([]string, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if err := s.rosterRepo.AddMember(ctx, name); err != nil {
		return nil, err
	}
	return s.rosterRepo.ListMembers(ctx)
}

func (s *rosterService) RemoveMember(ctx context.Context, name string) ([]string, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if _, err := s.rosterRepo.RemoveMember(ctx, name); err != nil {
		return nil, err
	}
	if _, err := s.votes.DeleteVoter(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to remove votes of %q: %w", name, err)
	}
	return s.rosterRepo.ListMembers(ctx)
}

func (s *rosterService) RenameMember(ctx context.Context, oldName, newName string) ([]string, error) {
	oldName, newName, err := requireRename(oldName, newName)
	if err != nil {
		return nil, err
	}
	// Refuse before the roster is touched.
	collides, err := s.votes.VoterCollides(ctx, oldName, newName)
	if err != nil {
		return nil, fmt.Errorf("failed to check votes of %q: %w", newName, err)
	}
	if collides {
		return nil, domain.ErrVoteConflict
	}
	if _, err := s.rosterRepo.RenameMember(ctx, oldName, newName); err != nil {
		return nil, err
	}
	if _, err := s.votes.RenameVoter(ctx, oldName, newName); err != nil {
		return nil, fmt.Errorf("failed to rename votes of %q: %w", oldName, err)
	}
	return s.rosterRepo.ListMembers(ctx)
}

func (s *rosterService) AddLocation(ctx context.Context, name string) ([]string, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if err := s.rosterRepo.AddLocation(ctx, name); err != nil {
		return nil, err
	}
	return s.rosterRepo.ListLocations(ctx)
}

func (s *rosterService) RemoveLocation(ctx context.Context, name string) ([]string, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if _, err := s.rosterRepo.RemoveLocation(ctx, name); err != nil {
		return nil, err
	}

	_, err = s.votes.RewriteLocations(ctx, func(locations []string) []string {
		kept := make([]string, 0, len(locations))
		for _, l := range locations {
			if l != name {
				kept = append(kept, l)
			}
		}
		return kept
	})
	if err != nil {
		return nil, fmt.Errorf("failed to drop location %q from votes: %w", name, err)
	}
	return s.rosterRepo.ListLocations(ctx)
}

func (s *rosterService) RenameLocation(ctx context.Context, oldName, newName string) ([]string, error) {
	oldName, newName, err := requireRename(oldName, newName)
	if err != nil {
		return nil, err
	}
	if _, err := s.rosterRepo.RenameLocation(ctx, oldName, newName); err != nil {
		return nil, err
	}

	_, err = s.votes.RewriteLocations(ctx, func(locations []string) []string {
		renamed := make([]string, 0, len(locations))
		for _, l := range locations {
			if l == oldName {
				l = newName
			}
			renamed = append(renamed, l)
		}
		return domain.Dedupe(renamed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename location %q in votes: %w", oldName, err)
	}
	return s.rosterRepo.ListLocations(ctx)
}

func (s *rosterService) Seed(ctx context.Context, members, locations []string) error {
	existing, err := s.rosterRepo.ListMembers(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for _, name := range domain.Dedupe(members) {
			if err := s.rosterRepo.AddMember(ctx, name); err != nil {
				return fmt.Errorf("failed to seed member %q: %w", name, err)
			}
		}
	}

	existing, err = s.rosterRepo.ListLocations(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for _, name := range domain.Dedupe(locations) {
			if err := s.rosterRepo.AddLocation(ctx, name); err != nil {
				return fmt.Errorf("failed to seed location %q: %w", name, err)
			}
		}
	}
	return nil
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrMissingName
	}
	return name, nil
}

func requireRename(oldName, newName string) (string, string, error) {
	oldName, err := requireName(oldName)
	if err != nil {
		return "", "", err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return "", "", domain.ErrEmptyName
	}
	if oldName == newName {
		return "", "", domain.ErrSameName
	}
	return oldName, newName, nil
}
