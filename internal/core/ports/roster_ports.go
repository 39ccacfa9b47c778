package ports

import "context"

// RosterRepository keeps the member and location name lists. Removing or
// renaming an unknown name affects nothing and is not an error.
type RosterRepository interface {
	ListMembers(ctx context.Context) ([]string, error)
	AddMember(ctx context.Context, name string) error
	RemoveMember(ctx context.Context, name string) (int64, error)
	RenameMember(ctx context.Context, oldName, newName string) (int64, error)

	ListLocations(ctx context.Context) ([]string, error)
	AddLocation(ctx context.Context, name string) error
	RemoveLocation(ctx context.Context, name string) (int64, error)
	RenameLocation(ctx context.Context, oldName, newName string) (int64, error)
}

type Roster struct {
	Members   []string
	Locations []string
	Weekdays  []string
}

type RosterService interface {
	Config(ctx context.Context) (*Roster, error)

	AddMember(ctx context.Context, name string) ([]string, error)
	RemoveMember(ctx context.Context, name string) ([]string, error)
	RenameMember(ctx context.Context, oldName, newName string) ([]string, error)

	AddLocation(ctx context.Context, name string) ([]string, error)
	RemoveLocation(ctx context.Context, name string) ([]string, error)
	RenameLocation(ctx context.Context, oldName, newName string) ([]string, error)

	// Seed fills empty rosters; lists that already have entries are left alone.
	Seed(ctx context.Context, members, locations []string) error
}
