package fx

import (
	"context"
	"ladder-tracker/internal/api"
	"ladder-tracker/internal/config"
	"ladder-tracker/internal/constants"
	"ladder-tracker/internal/database"
	"ladder-tracker/internal/domain"
	"ladder-tracker/internal/logger"
	"ladder-tracker/internal/repository"
	"ladder-tracker/internal/routing"
	"ladder-tracker/internal/server"
	"ladder-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideRouter(cfg *config.Config) *routing.Router {
	return routing.NewRouter(cfg.DefaultPlatform)
}

func ProvideRiotAPI(client *api.RiotClient) service.RiotAPI {
	return client
}

// SeedRoster inserts the ROSTER entries on startup. Malformed entries are
// logged and skipped.
func SeedRoster(lc fx.Lifecycle, cfg *config.Config, roster *repository.RosterRepository, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if len(cfg.Roster) == 0 {
				return nil
			}

			reqs := make([]domain.PlayerRequest, 0, len(cfg.Roster))
			for _, raw := range cfg.Roster {
				req, err := repository.ParseRosterEntry(raw)
				if err != nil {
					logger.Warn().Err(err).Msg("skipping roster seed entry")
					continue
				}
				reqs = append(reqs, req)
			}

			ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
			defer cancel()

			_, err := roster.Seed(ctx, reqs)
			return err
		},
	})
}

var Module = fx.Options(
	config.Module,
	logger.Module,
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewRosterRepository),
	// api client
	fx.Provide(api.NewRiotClient),
	fx.Provide(ProvideRiotAPI),
	fx.Provide(ProvideRouter),
	// svc
	fx.Provide(service.NewMatchHistoryService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewBatchService),
	// server
	fx.Provide(server.NewTrackerServer),
	fx.Invoke(SeedRoster),
)
