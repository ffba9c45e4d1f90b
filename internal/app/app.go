package app

import (
	"fmt"
	"net/http"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/config"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/fantasyteam"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/pricing"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/infrastructure/repository/memory"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/infrastructure/repository/postgres"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/interfaces/httpapi"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/cache"
	idgen "github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/id"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/usecase"
)

// NewHTTPServer wires the read API. With a DB URL configured it serves the
// ingested Postgres data; without one it falls back to the seeded in-memory
// repositories so the API can be exercised with no database at all.
// The returned cleanup closes the database handle, if any.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	var (
		rosterSvc      *usecase.RosterService
		fantasySvc     *usecase.FantasyTeamService
		leaderboardSvc *usecase.LeaderboardService
		cleanup        = func() {}
	)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	if cfg.DBURL == "" {
		logger.Info("storage: in-memory demo seed (set DB_URL for postgres)")

		teamRepo := memory.NewTeamRepository(memory.SeedTeams())
		playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
		fantasyRepo := memory.NewFantasyTeamRepository()
		leaderboardRepo := memory.NewLeaderboardRepository(playerRepo, pricing.DefaultParams())

		rosterSvc = usecase.NewRosterService(teamRepo, playerRepo)
		fantasySvc = usecase.NewFantasyTeamService(fantasyRepo, playerRepo, fantasyteam.DefaultRules(), idgen.NewRandomGenerator())
		leaderboardSvc = usecase.NewLeaderboardService(leaderboardRepo, store, logger)
	} else {
		db, err := openDB(cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		cleanup = func() { _ = db.Close() }

		teamRepo := postgres.NewTeamRepository(db)
		playerRepo := postgres.NewPlayerRepository(db)
		fantasyRepo := postgres.NewFantasyTeamRepository(db)
		leaderboardRepo := postgres.NewLeaderboardRepository(db)

		rosterSvc = usecase.NewRosterService(teamRepo, playerRepo)
		fantasySvc = usecase.NewFantasyTeamService(fantasyRepo, playerRepo, fantasyteam.DefaultRules(), idgen.NewRandomGenerator())
		leaderboardSvc = usecase.NewLeaderboardService(leaderboardRepo, store, logger)
	}

	handler := httpapi.NewHandler(rosterSvc, leaderboardSvc, fantasySvc, cfg.Season, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}
