package service

import (
	"context"
	"errors"
	"fmt"
	"ladder-tracker/internal/api"
	"ladder-tracker/internal/constants"
	"ladder-tracker/internal/domain"
	"ladder-tracker/internal/routing"
	"ladder-tracker/internal/testutil"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPuuid = "puuid-1"

func matchIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("EUW1_%d", 100-i)
	}
	return ids
}

func newMatchService(riot *testutil.MockRiotAPI) *MatchHistoryService {
	return NewMatchHistoryService(riot, zerolog.Nop())
}

func TestRecentMatchesReturnsFewerWhenBufferExhausted(t *testing.T) {
	riot := new(testutil.MockRiotAPI)
	desired := 6
	ids := matchIDs(desired + constants.MatchHistoryBuffer)

	riot.On("GetMatchIDs", mock.Anything, routing.RegionEurope, testPuuid, constants.RankedSoloQueue, desired+constants.MatchHistoryBuffer).
		Return(ids, nil).Once()
	for i, id := range ids {
		duration := int64(1800)
		if i%2 == 0 {
			duration = 200
		}
		riot.On("GetMatch", mock.Anything, routing.RegionEurope, id).
			Return(testutil.NewMatch(id, testPuuid, duration, true), nil).Once()
	}

	got := newMatchService(riot).RecentMatches(context.Background(), routing.RegionEurope, testPuuid, desired)

	require.Len(t, got, 5)
	for i, summary := range got {
		assert.Equal(t, ids[2*i+1], summary.MatchID, "order must follow the provider's id list")
	}
	riot.AssertNumberOfCalls(t, "GetMatch", len(ids))
	testutil.VerifyAllMocks(t, riot)
}

func TestRecentMatchesStopsOnceEnoughCollected(t *testing.T) {
	riot := new(testutil.MockRiotAPI)
	desired := 3
	ids := matchIDs(desired + constants.MatchHistoryBuffer)

	riot.On("GetMatchIDs", mock.Anything, routing.RegionAmericas, testPuuid, constants.RankedSoloQueue, desired+constants.MatchHistoryBuffer).
		Return(ids, nil).Once()
	for _, id := range ids[:desired] {
		riot.On("GetMatch", mock.Anything, routing.RegionAmericas, id).
			Return(testutil.NewMatch(id, testPuuid, 1500, false), nil).Once()
	}

	got := newMatchService(riot).RecentMatches(context.Background(), routing.RegionAmericas, testPuuid, desired)

	assert.Len(t, got, desired)
	riot.AssertNumberOfCalls(t, "GetMatch", desired)
	testutil.VerifyAllMocks(t, riot)
}

func TestRecentMatchesRemakeThreshold(t *testing.T) {
	riot := new(testutil.MockRiotAPI)
	ids := []string{"EUW1_3", "EUW1_2", "EUW1_1"}

	riot.On("GetMatchIDs", mock.Anything, routing.RegionEurope, testPuuid, constants.RankedSoloQueue, 2+constants.MatchHistoryBuffer).
		Return(ids, nil)
	riot.On("GetMatch", mock.Anything, routing.RegionEurope, "EUW1_3").
		Return(testutil.NewMatch("EUW1_3", testPuuid, 269, true), nil)
	riot.On("GetMatch", mock.Anything, routing.RegionEurope, "EUW1_2").
		Return(testutil.NewMatch("EUW1_2", testPuuid, 270, true), nil)
	riot.On("GetMatch", mock.Anything, routing.RegionEurope, "EUW1_1").
		Return(testutil.NewMatch("EUW1_1", testPuuid, 271, false), nil)

	got := newMatchService(riot).RecentMatches(context.Background(), routing.RegionEurope, testPuuid, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "EUW1_2", got[0].MatchID)
	assert.Equal(t, "EUW1_1", got[1].MatchID)
}

func TestRecentMatchesSkipsFailedDetail(t *testing.T) {
	riot := new(testutil.MockRiotAPI)
	ids := []string{"EUW1_3", "EUW1_2", "EUW1_1"}

	riot.On("GetMatchIDs", mock.Anything, routing.RegionEurope, testPuuid, constants.RankedSoloQueue, 3+constants.MatchHistoryBuffer).
		Return(ids, nil)
	riot.On("GetMatch", mock.Anything, routing.RegionEurope, "EUW1_3").
		Return(testutil.NewMatch("EUW1_3", testPuuid, 1600, true), nil)
	riot.On("GetMatch", mock.Anything, routing.RegionEurope, "EUW1_2").
		Return(nil, errors.New("riot api error: 503 - unavailable"))
	riot.On("GetMatch", mock.Anything, routing.RegionEurope, "EUW1_1").
		Return(testutil.NewMatch("EUW1_1", testPuuid, 1600, false), nil)

	got := newMatchService(riot).RecentMatches(context.Background(), routing.RegionEurope, testPuuid, 3)

	require.Len(t, got, 2)
	assert.Equal(t, "EUW1_3", got[0].MatchID)
	assert.Equal(t, "EUW1_1", got[1].MatchID)
	testutil.VerifyAllMocks(t, riot)
}

func TestRecentMatchesPlaceholderForMissingParticipant(t *testing.T) {
	riot := new(testutil.MockRiotAPI)

	riot.On("GetMatchIDs", mock.Anything, routing.RegionEurope, testPuuid, constants.RankedSoloQueue, 1+constants.MatchHistoryBuffer).
		Return([]string{"EUW1_9"}, nil)
	riot.On("GetMatch", mock.Anything, routing.RegionEurope, "EUW1_9").
		Return(testutil.NewMatch("EUW1_9", "somebody", 1700, true), nil)

	got := newMatchService(riot).RecentMatches(context.Background(), routing.RegionEurope, testPuuid, 1)

	require.Len(t, got, 1)
	assert.Equal(t, domain.MatchSummary{MatchID: "EUW1_9", Won: false, ChampionID: "0", KDA: "N/A"}, got[0])
}

func TestRecentMatchesSummaryFields(t *testing.T) {
	riot := new(testutil.MockRiotAPI)

	riot.On("GetMatchIDs", mock.Anything, routing.RegionAsia, testPuuid, constants.RankedSoloQueue, 1+constants.MatchHistoryBuffer).
		Return([]string{"KR_1"}, nil)
	riot.On("GetMatch", mock.Anything, routing.RegionAsia, "KR_1").
		Return(testutil.NewMatch("KR_1", testPuuid, 1700, true), nil)

	got := newMatchService(riot).RecentMatches(context.Background(), routing.RegionAsia, testPuuid, 1)

	require.Len(t, got, 1)
	assert.Equal(t, domain.MatchSummary{
		MatchID:      "KR_1",
		Won:          true,
		ChampionID:   "103",
		ChampionName: "Ahri",
		KDA:          "7.00",
	}, got[0])
}

func TestRecentMatchesIDListFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"upstream error", errors.New("riot api error: 500 - boom")},
		{"not found", api.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			riot := new(testutil.MockRiotAPI)
			riot.On("GetMatchIDs", mock.Anything, routing.RegionEurope, testPuuid, constants.RankedSoloQueue, 5+constants.MatchHistoryBuffer).
				Return(nil, tt.err)

			got := newMatchService(riot).RecentMatches(context.Background(), routing.RegionEurope, testPuuid, 5)

			assert.NotNil(t, got)
			assert.Empty(t, got)
			riot.AssertNotCalled(t, "GetMatch", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestFormatKDA(t *testing.T) {
	tests := []struct {
		k, d, a int
		want    string
	}{
		{6, 2, 8, "7.00"},
		{3, 0, 4, "7.00"},
		{0, 0, 0, "0.00"},
		{1, 3, 1, "0.67"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatKDA(tt.k, tt.d, tt.a))
	}
}
