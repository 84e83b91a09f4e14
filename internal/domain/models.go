package domain

import (
	"time"
)

type QueueType string

const (
	QueueRankedSolo QueueType = "RANKED_SOLO_5x5"
	QueueRankedFlex QueueType = "RANKED_FLEX_SR"
)

// IdentityKind selects which ranked-entries endpoint variant is used.
type IdentityKind int

const (
	IdentitySummonerID IdentityKind = iota
	IdentityPUUID
)

func (k IdentityKind) String() string {
	if k == IdentityPUUID {
		return "puuid"
	}
	return "summoner_id"
}

type PlayerRequest struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	Platform string `json:"platform,omitempty"`
}

type Account struct {
	Puuid    string
	GameName string
	TagLine  string
}

// Summoner.ID is empty for accounts on the newer schema that no longer
// expose an encrypted summoner id.
type Summoner struct {
	ID            string
	ProfileIconID int
	SummonerLevel int64
}

func (s Summoner) HasID() bool {
	return s.ID != ""
}

type LeagueEntry struct {
	QueueType    QueueType
	Tier         Tier
	Division     Division
	LeaguePoints int
	Wins         int
	Losses       int
}

type MatchParticipant struct {
	Puuid        string
	ChampionID   int
	ChampionName string
	Win          bool
	Kills        int
	Deaths       int
	Assists      int
}

type Match struct {
	ID              string
	DurationSeconds int64
	Participants    []MatchParticipant
}

type MatchSummary struct {
	MatchID      string `json:"matchId"`
	Won          bool   `json:"won"`
	ChampionID   string `json:"championId"`
	ChampionName string `json:"championName,omitempty"`
	KDA          string `json:"kda"`
}

type MasteryEntry struct {
	ChampionID     string `json:"id"`
	ChampionPoints int    `json:"championPoints"`
	ChampionLevel  int    `json:"championLevel"`
}

type ActiveGame struct {
	GameID   int64
	GameMode string
}

type PlayerProfile struct {
	Puuid         string         `json:"id"`
	SummonerName  string         `json:"summonerName"`
	TagLine       string         `json:"tagLine"`
	Platform      string         `json:"platform"`
	Region        string         `json:"region"`
	ProfileIconID int            `json:"profileIconId"`
	SummonerLevel int64          `json:"summonerLevel"`
	Rank          Tier           `json:"rank"`
	Division      Division       `json:"division"`
	LP            int            `json:"lp"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	GamesPlayed   int            `json:"gamesPlayed"`
	WinRate       int            `json:"winRate"`
	Streak        int            `json:"streak"`
	RecentMatches []MatchSummary `json:"recentMatches"`
	TopChampions  []MasteryEntry `json:"topChampions"`
	IsInGame      bool           `json:"isInGame"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

func (p *PlayerProfile) Standing() Standing {
	return Standing{Tier: p.Rank, Division: p.Division, LP: p.LP}
}

type BatchResult struct {
	Success  bool           `json:"success"`
	GameName string         `json:"gameName"`
	TagLine  string         `json:"tagLine"`
	Player   *PlayerProfile `json:"player,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type RosterEntry struct {
	ID        string    `json:"id"`
	GameName  string    `json:"gameName"`
	TagLine   string    `json:"tagLine"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e RosterEntry) Request() PlayerRequest {
	return PlayerRequest{GameName: e.GameName, TagLine: e.TagLine, Platform: e.Platform}
}

// WinRate is the rounded integer percentage of wins, 0 when no games were played.
func WinRate(wins, losses int) int {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	return int(float64(wins)/float64(total)*100 + 0.5)
}

// Streak returns +N for N leading wins, -N for N leading losses.
func Streak(matches []MatchSummary) int {
	if len(matches) == 0 {
		return 0
	}
	first := matches[0].Won
	n := 0
	for _, m := range matches {
		if m.Won != first {
			break
		}
		n++
	}
	if !first {
		return -n
	}
	return n
}
