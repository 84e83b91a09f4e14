package api

import (
	"errors"
	"ladder-tracker/internal/domain"
	"strconv"
)

type AccountDTO struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

func (a *AccountDTO) toDomain() (*domain.Account, error) {
	if a.Puuid == "" {
		return nil, errors.New("account response is missing puuid")
	}
	return &domain.Account{Puuid: a.Puuid, GameName: a.GameName, TagLine: a.TagLine}, nil
}

// SummonerDTO.ID is omitted by the provider for newer accounts.
type SummonerDTO struct {
	ID            string `json:"id"`
	Puuid         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel"`
}

func (s *SummonerDTO) toDomain() *domain.Summoner {
	return &domain.Summoner{ID: s.ID, ProfileIconID: s.ProfileIconID, SummonerLevel: s.SummonerLevel}
}

type LeagueEntryDTO struct {
	LeagueID     string `json:"leagueId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
}

func (e LeagueEntryDTO) toDomain() (domain.LeagueEntry, bool) {
	tier, ok := domain.ParseTier(e.Tier)
	if !ok {
		return domain.LeagueEntry{}, false
	}
	division, _ := domain.ParseDivision(e.Rank)
	return domain.LeagueEntry{
		QueueType:    domain.QueueType(e.QueueType),
		Tier:         tier,
		Division:     division,
		LeaguePoints: e.LeaguePoints,
		Wins:         e.Wins,
		Losses:       e.Losses,
	}, true
}

type MasteryDTO struct {
	ChampionID     int `json:"championId"`
	ChampionLevel  int `json:"championLevel"`
	ChampionPoints int `json:"championPoints"`
}

func (m MasteryDTO) toDomain() domain.MasteryEntry {
	return domain.MasteryEntry{
		ChampionID:     strconv.Itoa(m.ChampionID),
		ChampionPoints: m.ChampionPoints,
		ChampionLevel:  m.ChampionLevel,
	}
}

type ActiveGameDTO struct {
	GameID   int64  `json:"gameId"`
	GameMode string `json:"gameMode"`
}

type MatchDTO struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info struct {
		GameDuration     int64            `json:"gameDuration"`
		GameEndTimestamp int64            `json:"gameEndTimestamp"`
		Participants     []ParticipantDTO `json:"participants"`
	} `json:"info"`
}

type ParticipantDTO struct {
	Puuid        string `json:"puuid"`
	ChampionID   int    `json:"championId"`
	ChampionName string `json:"championName"`
	Win          bool   `json:"win"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
}

// DurationSeconds follows the provider's rule: matches without
// gameEndTimestamp report gameDuration in milliseconds.
func (m *MatchDTO) DurationSeconds() int64 {
	if m.Info.GameEndTimestamp == 0 {
		return m.Info.GameDuration / 1000
	}
	return m.Info.GameDuration
}

func (m *MatchDTO) toDomain() *domain.Match {
	participants := make([]domain.MatchParticipant, 0, len(m.Info.Participants))
	for _, p := range m.Info.Participants {
		participants = append(participants, domain.MatchParticipant{
			Puuid:        p.Puuid,
			ChampionID:   p.ChampionID,
			ChampionName: p.ChampionName,
			Win:          p.Win,
			Kills:        p.Kills,
			Deaths:       p.Deaths,
			Assists:      p.Assists,
		})
	}
	return &domain.Match{
		ID:              m.Metadata.MatchID,
		DurationSeconds: m.DurationSeconds(),
		Participants:    participants,
	}
}
