package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ladder-tracker/internal/config"
	"ladder-tracker/internal/domain"
	"ladder-tracker/internal/routing"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrMissingCredential = errors.New("riot api key is not configured")
)

const maxErrorBody = 512

// UpstreamError is any non-2xx, non-404 answer from the provider.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("riot api error: %d - %s", e.Status, e.Message)
}

type RiotClient struct {
	apiKey      string
	hostFormat  string
	timeout     time.Duration
	client      *fasthttp.Client
	logger      zerolog.Logger
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	AppLimit    string `json:"app_limit"`
	AppCount    string `json:"app_count"`
	MethodLimit string `json:"method_limit"`
	MethodCount string `json:"method_count"`

	// seconds, only set after a 429
	RetryAfter int `json:"retry_after"`

	LastStatus int       `json:"last_status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewRiotClient(cfg *config.Config, logger zerolog.Logger) *RiotClient {
	return &RiotClient{
		apiKey:     cfg.RiotAPIKey,
		hostFormat: cfg.RiotHostFormat,
		timeout:    cfg.UpstreamTimeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         cfg.UpstreamTimeout,
			WriteTimeout:        cfg.UpstreamTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger.With().Str("component", "riot_client").Logger(),
	}
}

func (c *RiotClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *RiotClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if v := string(resp.Header.Peek("X-App-Rate-Limit")); v != "" {
		c.rateLimit.AppLimit = v
	}
	if v := string(resp.Header.Peek("X-App-Rate-Limit-Count")); v != "" {
		c.rateLimit.AppCount = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit")); v != "" {
		c.rateLimit.MethodLimit = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit-Count")); v != "" {
		c.rateLimit.MethodCount = v
	}
	c.rateLimit.RetryAfter = 0
	if v := string(resp.Header.Peek("Retry-After")); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.rateLimit.RetryAfter = secs
		}
	}
	c.rateLimit.LastStatus = resp.StatusCode()
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *RiotClient) host(routingValue string) string {
	return fmt.Sprintf(c.hostFormat, routingValue)
}

func (c *RiotClient) GetAccountByRiotID(ctx context.Context, region routing.Region, gameName, tagLine string) (*domain.Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.host(string(region)), url.PathEscape(gameName), url.PathEscape(tagLine))
	resp, err := doRequest[AccountDTO](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return resp.toDomain()
}

func (c *RiotClient) GetSummonerByPUUID(ctx context.Context, platform routing.Platform, puuid string) (*domain.Summoner, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.host(string(platform)), url.PathEscape(puuid))
	resp, err := doRequest[SummonerDTO](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// GetLeagueEntries uses the by-summoner variant for IdentitySummonerID and
// the by-puuid variant otherwise.
func (c *RiotClient) GetLeagueEntries(ctx context.Context, platform routing.Platform, id string, kind domain.IdentityKind) ([]domain.LeagueEntry, error) {
	variant := "by-summoner"
	if kind == domain.IdentityPUUID {
		variant = "by-puuid"
	}
	u := fmt.Sprintf("%s/lol/league/v4/entries/%s/%s", c.host(string(platform)), variant, url.PathEscape(id))
	resp, err := doRequest[[]LeagueEntryDTO](ctx, c, u)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeagueEntry, 0, len(*resp))
	for _, dto := range *resp {
		entry, ok := dto.toDomain()
		if !ok {
			c.logger.Warn().Str("tier", dto.Tier).Str("rank", dto.Rank).Str("queue", dto.QueueType).Msg("skipping league entry with unknown tier")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *RiotClient) GetTopMasteries(ctx context.Context, platform routing.Platform, puuid string, count int) ([]domain.MasteryEntry, error) {
	u := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d",
		c.host(string(platform)), url.PathEscape(puuid), count)
	resp, err := doRequest[[]MasteryDTO](ctx, c, u)
	if err != nil {
		return nil, err
	}

	masteries := make([]domain.MasteryEntry, 0, len(*resp))
	for _, dto := range *resp {
		masteries = append(masteries, dto.toDomain())
	}
	return masteries, nil
}

// GetActiveGame returns ErrNotFound when the player is not in a game.
func (c *RiotClient) GetActiveGame(ctx context.Context, platform routing.Platform, puuid string) (*domain.ActiveGame, error) {
	u := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s", c.host(string(platform)), url.PathEscape(puuid))
	resp, err := doRequest[ActiveGameDTO](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return &domain.ActiveGame{GameID: resp.GameID, GameMode: resp.GameMode}, nil
}

// GetMatchIDs returns match ids newest first, as the provider orders them.
func (c *RiotClient) GetMatchIDs(ctx context.Context, region routing.Region, puuid string, queue, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?queue=%d&start=0&count=%d",
		c.host(string(region)), url.PathEscape(puuid), queue, count)
	resp, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *resp, nil
}

func (c *RiotClient) GetMatch(ctx context.Context, region routing.Region, matchID string) (*domain.Match, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.host(string(region)), url.PathEscape(matchID))
	resp, err := doRequest[MatchDTO](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

func doRequest[T any](ctx context.Context, client *RiotClient, url string) (*T, error) {
	if client.apiKey == "" {
		return nil, ErrMissingCredential
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(client.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	client.logger.Debug().Str("url", url).Msg("fetching")

	if err := client.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	client.updateRateLimit(resp)

	status := resp.StatusCode()
	if status == fasthttp.StatusNotFound {
		return nil, ErrNotFound
	}
	if status < 200 || status >= 300 {
		body := resp.Body()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		client.logger.Warn().Int("status", status).Str("url", url).Msg("riot api error")
		return nil, &UpstreamError{Status: status, Message: string(body)}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}
