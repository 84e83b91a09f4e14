package service

import (
	"context"
	"ladder-tracker/internal/config"
	"ladder-tracker/internal/domain"
	"time"

	"github.com/rs/zerolog"
)

type PlayerLookup interface {
	GetPlayer(ctx context.Context, req domain.PlayerRequest) (*domain.PlayerProfile, error)
}

// BatchService looks players up one at a time with a pause between
// requests, keeping the provider's rate limit out of reach.
type BatchService struct {
	players PlayerLookup
	pacing  time.Duration
	wait    func(ctx context.Context, d time.Duration)
	logger  zerolog.Logger
}

func NewBatchService(players *PlayerService, cfg *config.Config, logger zerolog.Logger) *BatchService {
	return newBatchService(players, cfg.BatchPacing, logger)
}

func newBatchService(players PlayerLookup, pacing time.Duration, logger zerolog.Logger) *BatchService {
	return &BatchService{
		players: players,
		pacing:  pacing,
		wait:    sleep,
		logger:  logger.With().Str("component", "batch_service").Logger(),
	}
}

// GetPlayers returns one result per request in request order. A failed
// lookup becomes a success:false entry; it never stops the batch.
// defaultPlatform applies to requests that carry no platform of their own.
func (s *BatchService) GetPlayers(ctx context.Context, reqs []domain.PlayerRequest, defaultPlatform string) []domain.BatchResult {
	results := make([]domain.BatchResult, 0, len(reqs))
	failures := 0
	start := time.Now()

	for i, req := range reqs {
		if req.Platform == "" {
			req.Platform = defaultPlatform
		}

		result := domain.BatchResult{GameName: req.GameName, TagLine: req.TagLine}
		profile, err := s.players.GetPlayer(ctx, req)
		if err != nil {
			failures++
			s.logger.Warn().Err(err).Int("index", i).Str("name", req.GameName).Str("tag", req.TagLine).Msg("player lookup failed")
			result.Error = err.Error()
		} else {
			result.Success = true
			result.Player = profile
		}
		results = append(results, result)

		if i < len(reqs)-1 && s.pacing > 0 {
			s.wait(ctx, s.pacing)
		}
	}

	s.logger.Info().
		Int("requested", len(reqs)).
		Int("failed", failures).
		Dur("elapsed", time.Since(start)).
		Msg("batch completed")

	return results
}

// sleep returns early when ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
