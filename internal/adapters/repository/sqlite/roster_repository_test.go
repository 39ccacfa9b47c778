package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterRepository(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewRosterRepository(db)

	for _, name := range []string{"Silvia", "Arthur", "Silvia"} {
		require.NoError(t, repo.AddMember(ctx, name))
	}
	members, err := repo.ListMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arthur", "Silvia"}, members)

	n, err := repo.RenameMember(ctx, "Arthur", "Art")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.RenameMember(ctx, "Art", "Silvia")
	assert.Error(t, err, "unique constraint on name")

	n, err = repo.RenameMember(ctx, "Nobody", "Somebody")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.RemoveMember(ctx, "Nobody")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.AddLocation(ctx, "boulderbar Seestadt"))
	n, err = repo.RemoveLocation(ctx, "boulderbar Seestadt")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	locations, err := repo.ListLocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, locations)
	assert.NotNil(t, locations)
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, CreateSchema(context.Background(), db))
}
