package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/external/floorball"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/staging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/team"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/id"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/normalize"
)

// StatsFetcher is the slice of the scrape client the stats jobs need.
type StatsFetcher interface {
	FetchStatsTable(ctx context.Context, role floorball.StatsRole, season string) (floorball.StatsTable, error)
}

type StatsSyncService struct {
	fetcher     StatsFetcher
	stagingRepo staging.Repository
	teamRepo    team.Repository
	playerRepo  player.Repository
	idGen       id.Generator
	logger      *logging.Logger
}

func NewStatsSyncService(
	fetcher StatsFetcher,
	stagingRepo staging.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *StatsSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsSyncService{
		fetcher:     fetcher,
		stagingRepo: stagingRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		idGen:       idGen,
		logger:      logger,
	}
}

// Seed scrapes the skater and goalie aggregate tables and replaces the
// season's staging rows with the result. Junk rows (no letters in the name)
// are dropped before staging.
func (s *StatsSyncService) Seed(ctx context.Context, season string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsSyncService.Seed")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return 0, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	warnings := floorball.NewHeaderWarnings()
	rows := make([]staging.Row, 0, 512)
	for _, role := range []floorball.StatsRole{floorball.RoleSkater, floorball.RoleGoalie} {
		table, err := s.fetcher.FetchStatsTable(ctx, role, season)
		if err != nil {
			return 0, fmt.Errorf("fetch %s stats: %w", role, err)
		}
		mapped := floorball.MapStatsRows(table, season, warnings)
		for _, row := range mapped {
			if row.IsJunk() {
				continue
			}
			rows = append(rows, row)
		}
	}
	for _, label := range warnings.Labels() {
		s.logger.WarnContext(ctx, "unrecognized stats column", "label", label)
	}

	if err := s.stagingRepo.Replace(ctx, season, rows); err != nil {
		return 0, fmt.Errorf("replace staging rows: %w", err)
	}

	s.logger.InfoContext(ctx, "season stats staged", "season", season, "rows", len(rows))
	return len(rows), nil
}

// Sync reconciles staged rows into teams and players: missing teams are
// created with derived codes, then the players table is fully replaced from
// staging. Unresolvable team names leave the player's team reference empty.
func (s *StatsSyncService) Sync(ctx context.Context, season string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsSyncService.Sync")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return 0, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	rows, err := s.stagingRepo.ListBySeason(ctx, season)
	if err != nil {
		return 0, fmt.Errorf("list staged rows: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list teams: %w", err)
	}
	teamByKey := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamByKey[normalize.FoldKey(t.Name)] = t
	}

	missing := make([]team.Team, 0, 4)
	for _, row := range rows {
		name := normalize.Name(row.TeamName)
		key := normalize.FoldKey(row.TeamName)
		if name == "" {
			continue
		}
		if _, ok := teamByKey[key]; ok {
			continue
		}

		teamID, err := s.idGen.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate team id: %w", err)
		}
		t := team.Team{ID: teamID, Code: normalize.TeamCode(name), Name: name}
		teamByKey[key] = t
		missing = append(missing, t)
	}
	if len(missing) > 0 {
		if err := s.teamRepo.CreateMany(ctx, missing); err != nil {
			return 0, fmt.Errorf("create missing teams: %w", err)
		}
		s.logger.InfoContext(ctx, "created missing teams", "count", len(missing))
	}

	players := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		if row.IsJunk() {
			continue
		}

		playerID, err := s.idGen.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate player id: %w", err)
		}
		p := player.Player{
			ID:       playerID,
			Name:     normalize.StripAnnotations(row.PlayerName),
			Position: positionFromScrape(row.Position),
			Stats: player.Stats{
				Games:          row.Games,
				Goals:          row.Goals,
				Assists:        row.Assists,
				Saves:          row.Saves,
				GoalsAgainst:   row.GoalsAgainst,
				PenaltyMinutes: row.PenaltyMinutes,
			},
		}
		if t, ok := teamByKey[normalize.FoldKey(row.TeamName)]; ok {
			p.TeamID = t.ID
		}
		players = append(players, p)
	}

	if err := s.playerRepo.ReplaceAll(ctx, players); err != nil {
		return 0, fmt.Errorf("replace players: %w", err)
	}

	s.logger.InfoContext(ctx, "players synced from staging", "season", season, "players", len(players))
	return len(players), nil
}

// positionFromScrape maps the site's position text to a position code. The
// Latvian single letters collide with the English ones ("A" is aizsargs, a
// defender), so Latvian spellings win.
func positionFromScrape(raw string) player.Position {
	key := strings.ToLower(normalize.Name(raw))
	switch {
	case key == "":
		return player.PositionUnknown
	case strings.HasPrefix(key, "vart"), key == "v", key == "g", strings.HasPrefix(key, "goal"):
		return player.PositionGoalie
	case strings.HasPrefix(key, "uzbruc"), key == "u", key == "f", strings.HasPrefix(key, "forward"), strings.HasPrefix(key, "attack"):
		return player.PositionAttacker
	case strings.HasPrefix(key, "aizsarg"), key == "a", key == "d", strings.HasPrefix(key, "defen"):
		return player.PositionDefender
	default:
		return player.PositionUnknown
	}
}
