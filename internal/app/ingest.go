package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/external/floorball"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/config"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/pricing"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/infrastructure/repository/postgres"
	idgen "github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/id"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/usecase"
)

// Ingest bundles the scrape-and-store jobs behind one wiring point for the
// CLI. All jobs share a single scrape client so the request gap applies
// across jobs, not per job.
type Ingest struct {
	Calendar *usecase.CalendarService
	Events   *usecase.MatchEventService
	Stats    *usecase.StatsSyncService
	Pricing  *usecase.PricingService
	Parity   *usecase.ParityService
}

// NewIngest needs a database: scraped data has nowhere to go otherwise.
func NewIngest(cfg config.Config, logger *logging.Logger) (*Ingest, func(), error) {
	if cfg.DBURL == "" {
		return nil, nil, fmt.Errorf("ingestion requires DB_URL (or SUPABASE_DB_URL)")
	}

	db, err := openDB(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	cleanup := func() { _ = db.Close() }

	ingest, err := newIngest(cfg, db, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return ingest, cleanup, nil
}

func newIngest(cfg config.Config, db *sqlx.DB, logger *logging.Logger) (*Ingest, error) {
	client := floorball.NewClient(floorball.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.ScrapeTimeout},
		BaseURL:    cfg.ScrapeBaseURL,
		Cookie:     cfg.ScrapeCookie,
		UserAgent:  cfg.ScrapeUserAgent,
		MinGap:     cfg.ScrapeMinGap,
		MaxRetries: cfg.ScrapeMaxRetries,
		Logger:     logger,
	})

	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	eventRepo := postgres.NewMatchEventRepository(db)
	stagingRepo := postgres.NewStagingRepository(db)
	totalsRepo := postgres.NewSeasonTotalsRepository(db)

	ids := idgen.NewRandomGenerator()

	pricingSvc, err := usecase.NewPricingService(playerRepo, pricing.DefaultParams(), logger)
	if err != nil {
		return nil, fmt.Errorf("build pricing service: %w", err)
	}

	return &Ingest{
		Calendar: usecase.NewCalendarService(client, teamRepo, matchRepo, ids, logger, cfg.CI),
		Events:   usecase.NewMatchEventService(client, matchRepo, eventRepo, playerRepo, ids, logger),
		Stats:    usecase.NewStatsSyncService(client, stagingRepo, teamRepo, playerRepo, ids, logger),
		Pricing:  pricingSvc,
		Parity:   usecase.NewParityService(stagingRepo, totalsRepo, usecase.DefaultParityThresholds(), logger),
	}, nil
}
