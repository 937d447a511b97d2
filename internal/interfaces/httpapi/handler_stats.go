package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/groupgrid/connections-tracker/internal/domain/stats"
)

type colorSummaryDTO struct {
	Color       string  `json:"color"`
	AvgSolveRow float64 `json:"avgSolveRow"`
	SuccessRate float64 `json:"successRate"`
}

type globalStatsDTO struct {
	Results           int               `json:"results"`
	Players           int               `json:"players"`
	Colors            []colorSummaryDTO `json:"colors"`
	EasiestBySuccess  []string          `json:"easiestBySuccess"`
	EasiestByPosition []string          `json:"easiestByPosition"`

	MostActive    []playerSummaryDTO `json:"mostActive"`
	TopWinners    []playerSummaryDTO `json:"topWinners"`
	TopWinRates   []playerSummaryDTO `json:"topWinRates"`
	TopWinStreaks []playerSummaryDTO `json:"topWinStreaks"`
}

type playerSummaryDTO struct {
	UserID                 string  `json:"userId"`
	GamesPlayed            int     `json:"gamesPlayed"`
	Wins                   int     `json:"wins"`
	WinRate                float64 `json:"winRate"`
	UnfailingGames         int     `json:"unfailingGames"`
	UnfailingRate          float64 `json:"unfailingRate"`
	LongestStreak          int     `json:"longestStreak"`
	LongestStreakEndPuzzle int     `json:"longestStreakEndPuzzle"`
	CurrentStreak          int     `json:"currentStreak"`
	LastPuzzle             int     `json:"lastPuzzle"`
}

type positionDTO struct {
	Rank     int               `json:"rank"`
	Entry    playerSummaryDTO  `json:"entry"`
	Previous *playerSummaryDTO `json:"previous,omitempty"`
	Next     *playerSummaryDTO `json:"next,omitempty"`
}

type userStatsDTO struct {
	Summary        playerSummaryDTO       `json:"summary"`
	LastPuzzleDate string                 `json:"lastPuzzleDate"`
	Positions      map[string]positionDTO `json:"positions"`
}

type leaderboardDTO struct {
	Category string             `json:"category"`
	Top      []playerSummaryDTO `json:"top"`
	Worst    []playerSummaryDTO `json:"worst"`
}

func playerSummaryToDTO(item stats.PlayerSummary) playerSummaryDTO {
	return playerSummaryDTO{
		UserID:                 item.UserID,
		GamesPlayed:            item.GamesPlayed,
		Wins:                   item.Wins,
		WinRate:                item.WinRate,
		UnfailingGames:         item.UnfailingGames,
		UnfailingRate:          item.UnfailingRate,
		LongestStreak:          item.LongestStreak,
		LongestStreakEndPuzzle: item.LongestStreakEndPuzzle,
		CurrentStreak:          item.CurrentStreak,
		LastPuzzle:             item.LastPuzzle,
	}
}

func playerSummariesToDTO(items []stats.PlayerSummary) []playerSummaryDTO {
	out := make([]playerSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerSummaryToDTO(item))
	}
	return out
}

func (h *Handler) GetGuildStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGuildStats")
	defer span.End()

	guildID := strings.TrimSpace(r.PathValue("guildID"))

	global, err := h.statsService.GetGlobalStats(ctx, guildID)
	if err != nil {
		h.logger.WarnContext(ctx, "get guild stats failed", "guild_id", guildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	colors := make([]colorSummaryDTO, 0, len(global.Colors))
	for _, item := range global.Colors {
		colors = append(colors, colorSummaryDTO{
			Color:       item.Color.String(),
			AvgSolveRow: item.AvgSolveRow,
			SuccessRate: item.SuccessRate,
		})
	}
	bySuccess := make([]string, 0, len(global.EasiestBySuccess))
	for _, item := range global.EasiestBySuccess {
		bySuccess = append(bySuccess, item.Color.String())
	}
	byPosition := make([]string, 0, len(global.EasiestByPosition))
	for _, item := range global.EasiestByPosition {
		byPosition = append(byPosition, item.Color.String())
	}

	writeSuccess(ctx, w, http.StatusOK, globalStatsDTO{
		Results:           global.Results,
		Players:           global.Players,
		Colors:            colors,
		EasiestBySuccess:  bySuccess,
		EasiestByPosition: byPosition,
		MostActive:        playerSummariesToDTO(global.MostActive),
		TopWinners:        playerSummariesToDTO(global.TopWinners),
		TopWinRates:       playerSummariesToDTO(global.TopWinRates),
		TopWinStreaks:     playerSummariesToDTO(global.TopWinStreaks),
	})
}

func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserStats")
	defer span.End()

	guildID := strings.TrimSpace(r.PathValue("guildID"))
	userID := strings.TrimSpace(r.PathValue("userID"))

	user, err := h.statsService.GetUserStats(ctx, guildID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get user stats failed", "guild_id", guildID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	positions := make(map[string]positionDTO, len(user.Positions))
	for category, pos := range user.Positions {
		dto := positionDTO{
			Rank:  pos.Rank,
			Entry: playerSummaryToDTO(pos.Entry),
		}
		if pos.Previous != nil {
			prev := playerSummaryToDTO(*pos.Previous)
			dto.Previous = &prev
		}
		if pos.Next != nil {
			next := playerSummaryToDTO(*pos.Next)
			dto.Next = &next
		}
		positions[string(category)] = dto
	}

	writeSuccess(ctx, w, http.StatusOK, userStatsDTO{
		Summary:        playerSummaryToDTO(user.Summary),
		LastPuzzleDate: user.LastPuzzleDate.Format(time.DateOnly),
		Positions:      positions,
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	guildID := strings.TrimSpace(r.PathValue("guildID"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = string(stats.CategoryWinRate)
	}

	board, err := h.statsService.GetLeaderboard(ctx, guildID, category)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "guild_id", guildID, "category", category, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{
		Category: string(board.Category),
		Top:      playerSummariesToDTO(board.Top),
		Worst:    playerSummariesToDTO(board.Worst),
	})
}
