package service

import (
	"context"
	"errors"
	"fmt"
	"ladder-tracker/internal/config"
	"ladder-tracker/internal/constants"
	"ladder-tracker/internal/domain"
	"ladder-tracker/internal/routing"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingRiotID    = errors.New("gameName and tagLine are required")
	ErrAccountNotFound  = errors.New("account not found")
	ErrSummonerNotFound = errors.New("summoner not found on platform")
)

// RiotAPI is the subset of the provider client the aggregator needs.
type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, region routing.Region, gameName, tagLine string) (*domain.Account, error)
	GetSummonerByPUUID(ctx context.Context, platform routing.Platform, puuid string) (*domain.Summoner, error)
	GetLeagueEntries(ctx context.Context, platform routing.Platform, id string, kind domain.IdentityKind) ([]domain.LeagueEntry, error)
	GetTopMasteries(ctx context.Context, platform routing.Platform, puuid string, count int) ([]domain.MasteryEntry, error)
	GetActiveGame(ctx context.Context, platform routing.Platform, puuid string) (*domain.ActiveGame, error)
	GetMatchIDs(ctx context.Context, region routing.Region, puuid string, queue, count int) ([]string, error)
	GetMatch(ctx context.Context, region routing.Region, matchID string) (*domain.Match, error)
}

type PlayerService struct {
	riot          RiotAPI
	matches       *MatchHistoryService
	router        *routing.Router
	recentMatches int
	now           func() time.Time
	logger        zerolog.Logger
}

func NewPlayerService(riot RiotAPI, matches *MatchHistoryService, router *routing.Router, cfg *config.Config, logger zerolog.Logger) *PlayerService {
	return &PlayerService{
		riot:          riot,
		matches:       matches,
		router:        router,
		recentMatches: cfg.RecentMatches,
		now:           time.Now,
		logger:        logger.With().Str("component", "player_service").Logger(),
	}
}

// GetPlayer builds a fresh profile for one Riot ID. Only the account and
// summoner lookups can fail it; every other lookup degrades to empty data.
func (s *PlayerService) GetPlayer(ctx context.Context, req domain.PlayerRequest) (*domain.PlayerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	gameName := strings.TrimSpace(req.GameName)
	tagLine := strings.TrimPrefix(strings.TrimSpace(req.TagLine), "#")
	if gameName == "" || tagLine == "" {
		return nil, ErrMissingRiotID
	}

	platform, region := s.router.Resolve(req.Platform)
	log := s.logger.With().Str("name", gameName).Str("tag", tagLine).Str("platform", string(platform)).Logger()
	log.Info().Msg("getting player")

	acc, err := s.riot.GetAccountByRiotID(ctx, region, gameName, tagLine)
	account := classify(acc, err)
	switch account.kind {
	case outcomeAbsent:
		log.Info().Msg("account not found")
		return nil, fmt.Errorf("%w: %s#%s", ErrAccountNotFound, gameName, tagLine)
	case outcomeFailed:
		log.Error().Err(account.err).Msg("failed to fetch account")
		return nil, fmt.Errorf("failed to fetch account: %w", account.err)
	}
	puuid := account.value.Puuid
	log = log.With().Str("puuid", puuid).Logger()

	sum, err := s.riot.GetSummonerByPUUID(ctx, platform, puuid)
	summoner := classify(sum, err)
	switch summoner.kind {
	case outcomeAbsent:
		log.Info().Msg("summoner not found")
		return nil, fmt.Errorf("%w: %s#%s on %s", ErrSummonerNotFound, gameName, tagLine, platform)
	case outcomeFailed:
		log.Error().Err(summoner.err).Msg("failed to fetch summoner")
		return nil, fmt.Errorf("failed to fetch summoner: %w", summoner.err)
	}

	var (
		solo      *domain.LeagueEntry
		masteries []domain.MasteryEntry
		inGame    bool
		recent    []domain.MatchSummary
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		solo = s.soloQueueEntry(ctx, log, platform, puuid, summoner.value)
		return nil
	})
	g.Go(func() error {
		masteries = s.topMasteries(ctx, log, platform, puuid)
		return nil
	})
	g.Go(func() error {
		inGame = s.isInGame(ctx, log, platform, puuid)
		return nil
	})
	g.Go(func() error {
		recent = s.matches.RecentMatches(ctx, region, puuid, s.recentMatches)
		return nil
	})
	_ = g.Wait()

	profile := &domain.PlayerProfile{
		Puuid:         puuid,
		SummonerName:  firstNonEmpty(account.value.GameName, gameName),
		TagLine:       firstNonEmpty(account.value.TagLine, tagLine),
		Platform:      string(platform),
		Region:        string(region),
		ProfileIconID: summoner.value.ProfileIconID,
		SummonerLevel: summoner.value.SummonerLevel,
		Rank:          domain.TierUnranked,
		Division:      domain.DivisionNone,
		RecentMatches: recent,
		TopChampions:  masteries,
		IsInGame:      inGame,
		LastUpdated:   s.now().UTC(),
	}
	if solo != nil {
		profile.Rank = solo.Tier
		profile.Division = solo.Division
		profile.LP = solo.LeaguePoints
		profile.Wins = solo.Wins
		profile.Losses = solo.Losses
	}
	profile.GamesPlayed = profile.Wins + profile.Losses
	profile.WinRate = domain.WinRate(profile.Wins, profile.Losses)
	profile.Streak = domain.Streak(profile.RecentMatches)

	log.Info().
		Str("rank", string(profile.Rank)).
		Str("division", string(profile.Division)).
		Int("lp", profile.LP).
		Int("matches", len(profile.RecentMatches)).
		Bool("in_game", profile.IsInGame).
		Msg("player fetched successfully")

	return profile, nil
}

// soloQueueEntry returns nil for unranked players and for failed lookups.
// Summoners without an internal id are looked up by puuid.
func (s *PlayerService) soloQueueEntry(ctx context.Context, log zerolog.Logger, platform routing.Platform, puuid string, summoner *domain.Summoner) *domain.LeagueEntry {
	id, kind := puuid, domain.IdentityPUUID
	if summoner.HasID() {
		id, kind = summoner.ID, domain.IdentitySummonerID
	}

	entries, err := s.riot.GetLeagueEntries(ctx, platform, id, kind)
	league := classify(entries, err)
	switch league.kind {
	case outcomeAbsent:
		return nil
	case outcomeFailed:
		log.Warn().Err(league.err).Stringer("identity", kind).Msg("failed to fetch league entries")
		return nil
	}

	for i := range league.value {
		if league.value[i].QueueType == domain.QueueRankedSolo {
			return &league.value[i]
		}
	}
	return nil
}

func (s *PlayerService) topMasteries(ctx context.Context, log zerolog.Logger, platform routing.Platform, puuid string) []domain.MasteryEntry {
	entries, err := s.riot.GetTopMasteries(ctx, platform, puuid, constants.TopMasteryCount)
	mastery := classify(entries, err)
	switch mastery.kind {
	case outcomeFailed:
		log.Warn().Err(mastery.err).Msg("failed to fetch champion mastery")
		return []domain.MasteryEntry{}
	case outcomeAbsent:
		return []domain.MasteryEntry{}
	}

	if len(mastery.value) > constants.TopMasteryCount {
		return mastery.value[:constants.TopMasteryCount]
	}
	if mastery.value == nil {
		return []domain.MasteryEntry{}
	}
	return mastery.value
}

func (s *PlayerService) isInGame(ctx context.Context, log zerolog.Logger, platform routing.Platform, puuid string) bool {
	game, err := s.riot.GetActiveGame(ctx, platform, puuid)
	active := classify(game, err)
	switch active.kind {
	case outcomeFound:
		return true
	case outcomeFailed:
		log.Warn().Err(active.err).Msg("failed to fetch active game")
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
