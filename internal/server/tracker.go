package server

import (
	"context"
	"encoding/json"
	"errors"
	"ladder-tracker/internal/api"
	"ladder-tracker/internal/constants"
	"ladder-tracker/internal/domain"
	"ladder-tracker/internal/repository"
	"ladder-tracker/internal/routing"
	"ladder-tracker/internal/service"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	RiotAPIPath = "/riot-api"
	HealthPath  = "/health"
)

const (
	actionGetPlayer          = "getPlayer"
	actionGetMultiplePlayers = "getMultiplePlayers"
	actionGetRoster          = "getRoster"
	actionAddRosterPlayer    = "addRosterPlayer"
	actionRemoveRosterPlayer = "removeRosterPlayer"
)

type PlayerFetcher interface {
	GetPlayer(ctx context.Context, req domain.PlayerRequest) (*domain.PlayerProfile, error)
}

type BatchFetcher interface {
	GetPlayers(ctx context.Context, reqs []domain.PlayerRequest, defaultPlatform string) []domain.BatchResult
}

type RosterStore interface {
	List(ctx context.Context) ([]domain.RosterEntry, error)
	Add(ctx context.Context, req domain.PlayerRequest) (*domain.RosterEntry, error)
	Remove(ctx context.Context, gameName, tagLine string) (bool, error)
}

type RateLimitReporter interface {
	GetRateLimitInfo() api.RateLimitInfo
}

type TrackerServer struct {
	players   PlayerFetcher
	batch     BatchFetcher
	roster    RosterStore
	rateLimit RateLimitReporter
	router    *routing.Router
	logger    zerolog.Logger
}

func NewTrackerServer(
	players *service.PlayerService,
	batch *service.BatchService,
	roster *repository.RosterRepository,
	riot *api.RiotClient,
	router *routing.Router,
	logger zerolog.Logger,
) *TrackerServer {
	return &TrackerServer{
		players:   players,
		batch:     batch,
		roster:    roster,
		rateLimit: riot,
		router:    router,
		logger:    logger,
	}
}

type actionRequest struct {
	Action   string                 `json:"action"`
	GameName string                 `json:"gameName"`
	TagLine  string                 `json:"tagLine"`
	Platform string                 `json:"platform"`
	Players  []domain.PlayerRequest `json:"players"`
}

type playerResponse struct {
	Player *domain.PlayerProfile `json:"player"`
}

type batchResponse struct {
	Results []domain.BatchResult `json:"results"`
}

type rosterResponse struct {
	Results []domain.BatchResult    `json:"results"`
	Ladder  []*domain.PlayerProfile `json:"ladder"`
}

type entryResponse struct {
	Entry *domain.RosterEntry `json:"entry"`
}

type removedResponse struct {
	Removed bool `json:"removed"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	RateLimit api.RateLimitInfo `json:"rateLimit"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Mount registers the tracker routes on r.
func (s *TrackerServer) Mount(r chi.Router) {
	r.Post(RiotAPIPath, s.HandleAction)
	r.Get(HealthPath, s.HandleHealth)
}

func (s *TrackerServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", RateLimit: s.rateLimit.GetRateLimitInfo()})
}

func (s *TrackerServer) HandleAction(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r)

	var req actionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid request body")
		s.writeError(w, r, &ValidationError{Message: "invalid request body"}, http.StatusBadRequest)
		return
	}

	log.Info().Str("action", req.Action).Str("platform", req.Platform).Msg("handling action")

	if err := req.validate(); err != nil {
		s.writeError(w, r, err, http.StatusBadRequest)
		return
	}

	switch req.Action {
	case actionGetPlayer:
		s.getPlayer(w, r, req)
	case actionGetMultiplePlayers:
		s.getMultiplePlayers(w, r, req)
	case actionGetRoster:
		s.getRoster(w, r)
	case actionAddRosterPlayer:
		s.addRosterPlayer(w, r, req)
	case actionRemoveRosterPlayer:
		s.removeRosterPlayer(w, r, req)
	}
}

func (s *TrackerServer) getPlayer(w http.ResponseWriter, r *http.Request, req actionRequest) {
	player, err := s.players.GetPlayer(r.Context(), domain.PlayerRequest{
		GameName: req.GameName,
		TagLine:  req.TagLine,
		Platform: req.Platform,
	})
	if err != nil {
		s.writeError(w, r, err, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, playerResponse{Player: player})
}

func (s *TrackerServer) getMultiplePlayers(w http.ResponseWriter, r *http.Request, req actionRequest) {
	results := s.batch.GetPlayers(r.Context(), req.Players, s.defaultPlatform(req.Platform))
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

func (s *TrackerServer) getRoster(w http.ResponseWriter, r *http.Request) {
	entries, err := s.roster.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	reqs := make([]domain.PlayerRequest, 0, len(entries))
	for _, e := range entries {
		reqs = append(reqs, e.Request())
	}
	results := s.batch.GetPlayers(r.Context(), reqs, string(s.router.Default()))

	ladder := make([]*domain.PlayerProfile, 0, len(results))
	for _, res := range results {
		if res.Success && res.Player != nil {
			ladder = append(ladder, res.Player)
		}
	}
	domain.SortLadder(ladder)

	writeJSON(w, http.StatusOK, rosterResponse{Results: results, Ladder: ladder})
}

func (s *TrackerServer) addRosterPlayer(w http.ResponseWriter, r *http.Request, req actionRequest) {
	platform := ""
	if strings.TrimSpace(req.Platform) != "" {
		platform = string(s.router.NormalizePlatform(req.Platform))
	}

	entry, err := s.roster.Add(r.Context(), domain.PlayerRequest{
		GameName: req.GameName,
		TagLine:  req.TagLine,
		Platform: platform,
	})
	if err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, entryResponse{Entry: entry})
}

func (s *TrackerServer) removeRosterPlayer(w http.ResponseWriter, r *http.Request, req actionRequest) {
	removed, err := s.roster.Remove(r.Context(), req.GameName, req.TagLine)
	if err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, removedResponse{Removed: removed})
}

func (s *TrackerServer) defaultPlatform(platform string) string {
	if strings.TrimSpace(platform) == "" {
		return string(s.router.Default())
	}
	return platform
}

// requestLogger prefers the request-scoped logger set by the request id
// middleware.
func (s *TrackerServer) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}

// writeError maps known errors to their status and everything else to fallback.
func (s *TrackerServer) writeError(w http.ResponseWriter, r *http.Request, err error, fallback int) {
	status := statusFor(err, fallback)
	resp := errorResponse{Error: err.Error()}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		resp.Field = vErr.Field
	}

	log := s.requestLogger(r)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	writeJSON(w, status, resp)
}

func statusFor(err error, fallback int) int {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, service.ErrMissingRiotID),
		errors.Is(err, repository.ErrInvalidEntry):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrSummonerNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, api.ErrMissingCredential):
		return http.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return fallback
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
