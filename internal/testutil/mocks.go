package testutil

import (
	"context"
	"ladder-tracker/internal/domain"
	"ladder-tracker/internal/routing"
	"testing"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// MockRiotAPI stands in for the provider client in service tests.
type MockRiotAPI struct {
	mock.Mock
}

func (m *MockRiotAPI) GetAccountByRiotID(ctx context.Context, region routing.Region, gameName, tagLine string) (*domain.Account, error) {
	args := m.Called(ctx, region, gameName, tagLine)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockRiotAPI) GetSummonerByPUUID(ctx context.Context, platform routing.Platform, puuid string) (*domain.Summoner, error) {
	args := m.Called(ctx, platform, puuid)
	s, _ := args.Get(0).(*domain.Summoner)
	return s, args.Error(1)
}

func (m *MockRiotAPI) GetLeagueEntries(ctx context.Context, platform routing.Platform, id string, kind domain.IdentityKind) ([]domain.LeagueEntry, error) {
	args := m.Called(ctx, platform, id, kind)
	entries, _ := args.Get(0).([]domain.LeagueEntry)
	return entries, args.Error(1)
}

func (m *MockRiotAPI) GetTopMasteries(ctx context.Context, platform routing.Platform, puuid string, count int) ([]domain.MasteryEntry, error) {
	args := m.Called(ctx, platform, puuid, count)
	masteries, _ := args.Get(0).([]domain.MasteryEntry)
	return masteries, args.Error(1)
}

func (m *MockRiotAPI) GetActiveGame(ctx context.Context, platform routing.Platform, puuid string) (*domain.ActiveGame, error) {
	args := m.Called(ctx, platform, puuid)
	g, _ := args.Get(0).(*domain.ActiveGame)
	return g, args.Error(1)
}

func (m *MockRiotAPI) GetMatchIDs(ctx context.Context, region routing.Region, puuid string, queue, count int) ([]string, error) {
	args := m.Called(ctx, region, puuid, queue, count)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockRiotAPI) GetMatch(ctx context.Context, region routing.Region, matchID string) (*domain.Match, error) {
	args := m.Called(ctx, region, matchID)
	match, _ := args.Get(0).(*domain.Match)
	return match, args.Error(1)
}

// NewMatch builds a match with a single participant for the given puuid.
func NewMatch(id, puuid string, durationSeconds int64, win bool) *domain.Match {
	return &domain.Match{
		ID:              id,
		DurationSeconds: durationSeconds,
		Participants: []domain.MatchParticipant{
			{Puuid: "someone-else", ChampionID: 1, Win: !win, Kills: 1, Deaths: 1, Assists: 1},
			{Puuid: puuid, ChampionID: 103, ChampionName: "Ahri", Win: win, Kills: 6, Deaths: 2, Assists: 8},
		},
	}
}
