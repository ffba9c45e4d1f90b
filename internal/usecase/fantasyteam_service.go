package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/fantasyteam"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/id"
)

type FantasyTeamService struct {
	fantasyRepo fantasyteam.Repository
	playerRepo  player.Repository
	rules       fantasyteam.Rules
	idGen       id.Generator
	now         func() time.Time
}

func NewFantasyTeamService(fantasyRepo fantasyteam.Repository, playerRepo player.Repository, rules fantasyteam.Rules, idGen id.Generator) *FantasyTeamService {
	return &FantasyTeamService{
		fantasyRepo: fantasyRepo,
		playerRepo:  playerRepo,
		rules:       rules,
		idGen:       idGen,
		now:         time.Now,
	}
}

func (s *FantasyTeamService) Get(ctx context.Context, userID, season string) (fantasyteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyTeamService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	season = strings.TrimSpace(season)
	if userID == "" {
		return fantasyteam.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if season == "" {
		return fantasyteam.Team{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	team, exists, err := s.fantasyRepo.GetByUserAndSeason(ctx, userID, season)
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("get fantasy team: %w", err)
	}
	if !exists {
		return fantasyteam.Team{}, fmt.Errorf("%w: fantasy team user=%s season=%s", ErrNotFound, userID, season)
	}
	return team, nil
}

// SaveInput carries the client's roster submission; picks reference players
// by id and all pricing comes from the stored rows, never the client.
type SaveInput struct {
	UserID    string
	Season    string
	Name      string
	PlayerIDs []string
	Partial   bool
}

// Save validates the submitted roster against the composition and budget
// rules and upserts it. Partial saves skip the size and formation checks so
// the client can persist a roster mid-build.
func (s *FantasyTeamService) Save(ctx context.Context, input SaveInput) (fantasyteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyTeamService.Save")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Season = strings.TrimSpace(input.Season)
	input.Name = strings.TrimSpace(input.Name)
	if input.UserID == "" {
		return fantasyteam.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Season == "" {
		return fantasyteam.Team{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return fantasyteam.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(input.PlayerIDs) == 0 {
		return fantasyteam.Team{}, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	players, err := s.playerRepo.GetByIDs(ctx, input.PlayerIDs)
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("get players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	picks := make([]fantasyteam.Pick, 0, len(input.PlayerIDs))
	for _, playerID := range input.PlayerIDs {
		p, ok := byID[playerID]
		if !ok {
			return fantasyteam.Team{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
		picks = append(picks, fantasyteam.Pick{
			PlayerID: p.ID,
			TeamID:   p.TeamID,
			Position: p.Position,
			Price:    p.FinalPrice(),
		})
	}

	if input.Partial {
		err = fantasyteam.ValidatePicksPartial(picks, s.rules)
	} else {
		err = fantasyteam.ValidatePicks(picks, s.rules)
	}
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	team, exists, err := s.fantasyRepo.GetByUserAndSeason(ctx, input.UserID, input.Season)
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("get fantasy team: %w", err)
	}
	if !exists {
		teamID, err := s.idGen.NewID()
		if err != nil {
			return fantasyteam.Team{}, fmt.Errorf("generate fantasy team id: %w", err)
		}
		team = fantasyteam.Team{
			ID:        teamID,
			UserID:    input.UserID,
			Season:    input.Season,
			BudgetCap: s.rules.BudgetCap,
			CreatedAt: now,
		}
	}
	team.Name = input.Name
	team.Picks = picks
	team.UpdatedAt = now

	if err := team.ValidateBasic(); err != nil {
		return fantasyteam.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.fantasyRepo.Upsert(ctx, team); err != nil {
		return fantasyteam.Team{}, fmt.Errorf("upsert fantasy team: %w", err)
	}
	return team, nil
}
