package repository

import (
	"context"
	"ladder-tracker/internal/config"
	"ladder-tracker/internal/database"
	"ladder-tracker/internal/domain"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *RosterRepository {
	t.Helper()

	db, err := database.New(&config.Config{DBPath: filepath.Join(t.TempDir(), "roster.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRosterRepository(db, zerolog.Nop())
}

func TestParseRosterEntry(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.PlayerRequest
		wantErr bool
	}{
		{in: "Faker#KR1@KR", want: domain.PlayerRequest{GameName: "Faker", TagLine: "KR1", Platform: "kr"}},
		{in: " Caps # EUW ", want: domain.PlayerRequest{GameName: "Caps", TagLine: "EUW"}},
		{in: "Some Name#1234@na1", want: domain.PlayerRequest{GameName: "Some Name", TagLine: "1234", Platform: "na1"}},
		{in: "NoTag", wantErr: true},
		{in: "#EUW", wantErr: true},
		{in: "Name#", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRosterEntry(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRosterAddListRemove(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Add(ctx, domain.PlayerRequest{GameName: "Caps", TagLine: "EUW", Platform: "EUW1"})
	require.NoError(t, err)
	assert.Len(t, first.ID, 21)
	assert.Equal(t, "euw1", first.Platform)

	_, err = repo.Add(ctx, domain.PlayerRequest{GameName: "Faker", TagLine: "#KR1", Platform: "kr"})
	require.NoError(t, err)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, "Faker", entries[1].GameName)
	assert.Equal(t, "KR1", entries[1].TagLine)
	assert.False(t, entries[0].CreatedAt.IsZero())
	assert.Equal(t, domain.PlayerRequest{GameName: "Caps", TagLine: "EUW", Platform: "euw1"}, entries[0].Request())

	removed, err := repo.Remove(ctx, "caps", "euw")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, "caps", "euw")
	require.NoError(t, err)
	assert.False(t, removed)

	entries, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Faker", entries[0].GameName)
}

func TestRosterAddDuplicateIgnoresCase(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, domain.PlayerRequest{GameName: "Caps", TagLine: "EUW"})
	require.NoError(t, err)

	_, err = repo.Add(ctx, domain.PlayerRequest{GameName: "CAPS", TagLine: "euw"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestRosterAddRejectsEmpty(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Add(context.Background(), domain.PlayerRequest{GameName: " ", TagLine: "EUW"})
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestRosterSeedIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seed := []domain.PlayerRequest{
		{GameName: "Caps", TagLine: "EUW"},
		{GameName: "Faker", TagLine: "KR1", Platform: "kr"},
		{GameName: "caps", TagLine: "euw"},
	}

	added, err := repo.Seed(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = repo.Seed(ctx, seed)
	require.NoError(t, err)
	assert.Zero(t, added)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRosterListEmpty(t *testing.T) {
	repo := newTestRepo(t)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
