package service

import (
	"context"
	"fmt"
	"ladder-tracker/internal/constants"
	"ladder-tracker/internal/domain"
	"ladder-tracker/internal/routing"
	"strconv"

	"github.com/rs/zerolog"
)

type MatchHistoryService struct {
	riot   RiotAPI
	logger zerolog.Logger
}

func NewMatchHistoryService(riot RiotAPI, logger zerolog.Logger) *MatchHistoryService {
	return &MatchHistoryService{
		riot:   riot,
		logger: logger.With().Str("component", "match_history").Logger(),
	}
}

// RecentMatches returns up to desired ranked solo matches for puuid, newest
// first, with remakes filtered out. It never fails: a broken id list yields
// an empty history and a broken match detail is skipped.
func (s *MatchHistoryService) RecentMatches(ctx context.Context, region routing.Region, puuid string, desired int) []domain.MatchSummary {
	if desired <= 0 {
		return []domain.MatchSummary{}
	}

	matchIDs, err := s.riot.GetMatchIDs(ctx, region, puuid, constants.RankedSoloQueue, desired+constants.MatchHistoryBuffer)
	ids := classify(matchIDs, err)
	switch ids.kind {
	case outcomeAbsent:
		s.logger.Debug().Str("puuid", puuid).Msg("no match history")
		return []domain.MatchSummary{}
	case outcomeFailed:
		s.logger.Warn().Err(ids.err).Str("puuid", puuid).Str("region", string(region)).Msg("failed to fetch match ids")
		return []domain.MatchSummary{}
	}

	summaries := make([]domain.MatchSummary, 0, desired)
	remakes := 0
	for _, id := range ids.value {
		if len(summaries) >= desired {
			break
		}
		if ctx.Err() != nil {
			s.logger.Warn().Err(ctx.Err()).Str("puuid", puuid).Msg("match history interrupted")
			break
		}

		match, err := s.riot.GetMatch(ctx, region, id)
		detail := classify(match, err)
		switch detail.kind {
		case outcomeAbsent:
			s.logger.Warn().Str("match_id", id).Str("puuid", puuid).Msg("match not found, skipping")
			continue
		case outcomeFailed:
			s.logger.Warn().Err(detail.err).Str("match_id", id).Str("puuid", puuid).Msg("failed to fetch match, skipping")
			continue
		}

		if IsRemake(detail.value) {
			remakes++
			continue
		}
		summaries = append(summaries, s.summarize(detail.value, puuid))
	}

	s.logger.Debug().
		Str("puuid", puuid).
		Int("candidates", len(ids.value)).
		Int("collected", len(summaries)).
		Int("remakes", remakes).
		Msg("match history resolved")

	return summaries
}

func IsRemake(m *domain.Match) bool {
	return m.DurationSeconds < int64(constants.RemakeThreshold.Seconds())
}

func (s *MatchHistoryService) summarize(m *domain.Match, puuid string) domain.MatchSummary {
	for _, p := range m.Participants {
		if p.Puuid != puuid {
			continue
		}
		return domain.MatchSummary{
			MatchID:      m.ID,
			Won:          p.Win,
			ChampionID:   strconv.Itoa(p.ChampionID),
			ChampionName: p.ChampionName,
			KDA:          FormatKDA(p.Kills, p.Deaths, p.Assists),
		}
	}

	s.logger.Warn().Str("match_id", m.ID).Str("puuid", puuid).Msg("player missing from match participants")
	return domain.MatchSummary{
		MatchID:    m.ID,
		Won:        false,
		ChampionID: "0",
		KDA:        "N/A",
	}
}

// FormatKDA is (kills+assists)/deaths with deaths floored at 1.
func FormatKDA(kills, deaths, assists int) string {
	return fmt.Sprintf("%.2f", float64(kills+assists)/float64(max(deaths, 1)))
}
