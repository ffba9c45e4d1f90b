package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/fantasyteam"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/team"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/usecase"
)

// The mobile client is a single-user companion app; until accounts land,
// requests may pin a user with the X-User-Id header.
const demoUserID = "demo-manager"

type Handler struct {
	rosterService      *usecase.RosterService
	leaderboardService *usecase.LeaderboardService
	fantasyTeamService *usecase.FantasyTeamService
	defaultSeason      string
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	leaderboardService *usecase.LeaderboardService,
	fantasyTeamService *usecase.FantasyTeamService,
	defaultSeason string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:      rosterService,
		leaderboardService: leaderboardService,
		fantasyTeamService: fantasyTeamService,
		defaultSeason:      defaultSeason,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.rosterService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamRoster")
	defer span.End()

	teamID := r.PathValue("teamID")
	players, err := h.rosterService.TeamRoster(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "team roster failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.rosterService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	season := h.seasonFromRequest(r)
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	entries, err := h.leaderboardService.Leaderboard(ctx, season, limit, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryDTO{
			PlayerID:   entry.PlayerID,
			PlayerName: entry.PlayerName,
			TeamID:     entry.TeamID,
			Position:   entry.Position,
			Price:      entry.Price,
			Points:     entry.Points,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyFantasyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyFantasyTeam")
	defer span.End()

	userID := userIDFromRequest(r)
	season := h.seasonFromRequest(r)

	fantasy, err := h.fantasyTeamService.Get(ctx, userID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get fantasy team failed", "user_id", userID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fantasyTeamToDTO(fantasy))
}

func (h *Handler) SaveMyFantasyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyFantasyTeam")
	defer span.End()

	userID := userIDFromRequest(r)

	var req saveFantasyTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if strings.TrimSpace(req.Season) == "" {
		req.Season = h.defaultSeason
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fantasy, err := h.fantasyTeamService.Save(ctx, usecase.SaveInput{
		UserID:    userID,
		Season:    req.Season,
		Name:      req.Name,
		PlayerIDs: req.PlayerIDs,
		Partial:   req.Partial,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save fantasy team failed", "user_id", userID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fantasyTeamToDTO(fantasy))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) seasonFromRequest(r *http.Request) string {
	season := strings.TrimSpace(r.URL.Query().Get("season"))
	if season == "" {
		return h.defaultSeason
	}
	return season
}

func userIDFromRequest(r *http.Request) string {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		return demoUserID
	}
	return userID
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

type saveFantasyTeamRequest struct {
	Season    string   `json:"season"`
	Name      string   `json:"name" validate:"required,max=100"`
	PlayerIDs []string `json:"player_ids" validate:"required,min=1,dive,required"`
	Partial   bool     `json:"partial"`
}

type teamDTO struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type playerDTO struct {
	ID             string  `json:"id"`
	TeamID         string  `json:"teamId"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Games          int     `json:"games"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	Saves          int     `json:"saves"`
	PenaltyMinutes int     `json:"penaltyMinutes"`
	Price          float64 `json:"price"`
	Stub           bool    `json:"stub"`
}

type leaderboardEntryDTO struct {
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	TeamID     string  `json:"teamId"`
	Position   string  `json:"position"`
	Price      float64 `json:"price"`
	Points     int     `json:"points"`
}

type fantasyTeamDTO struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	Season       string           `json:"season"`
	Name         string           `json:"name"`
	BudgetCap    float64          `json:"budget_cap"`
	TotalCost    float64          `json:"total_cost"`
	Picks        []fantasyPickDTO `json:"picks"`
	CreatedAtUTC string           `json:"created_at_utc"`
	UpdatedAtUTC string           `json:"updated_at_utc"`
}

type fantasyPickDTO struct {
	PlayerID string  `json:"player_id"`
	TeamID   string  `json:"team_id"`
	Position string  `json:"position"`
	Price    float64 `json:"price"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, Code: v.Code, Name: v.Name}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:             v.ID,
		TeamID:         v.TeamID,
		Name:           v.Name,
		Position:       string(v.Position),
		Games:          v.Stats.Games,
		Goals:          v.Stats.Goals,
		Assists:        v.Stats.Assists,
		Saves:          v.Stats.Saves,
		PenaltyMinutes: v.Stats.PenaltyMinutes,
		Price:          v.FinalPrice(),
		Stub:           v.Stub,
	}
}

func fantasyTeamToDTO(v fantasyteam.Team) fantasyTeamDTO {
	picks := make([]fantasyPickDTO, 0, len(v.Picks))
	var total float64
	for _, pick := range v.Picks {
		total += pick.Price
		picks = append(picks, fantasyPickDTO{
			PlayerID: pick.PlayerID,
			TeamID:   pick.TeamID,
			Position: string(pick.Position),
			Price:    pick.Price,
		})
	}

	return fantasyTeamDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		Season:       v.Season,
		Name:         v.Name,
		BudgetCap:    v.BudgetCap,
		TotalCost:    total,
		Picks:        picks,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
