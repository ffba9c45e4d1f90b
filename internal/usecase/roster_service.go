package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/team"
)

// RosterService backs the mobile client's team and roster screens.
type RosterService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewRosterService(teamRepo team.Repository, playerRepo player.Repository) *RosterService {
	return &RosterService{teamRepo: teamRepo, playerRepo: playerRepo}
}

func (s *RosterService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *RosterService) TeamRoster(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.TeamRoster")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("%w: team=%s: %v", ErrNotFound, teamID, err)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}
	return players, nil
}

func (s *RosterService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}
