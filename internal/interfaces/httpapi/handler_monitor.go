package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/groupgrid/connections-tracker/internal/usecase"
)

type addMonitorRequest struct {
	ChannelID string `json:"channel_id" validate:"required"`
}

type monitorDTO struct {
	GuildID   string `json:"guildId"`
	ChannelID string `json:"channelId"`
	AddedAt   string `json:"addedAt"`
}

func (h *Handler) AddMonitor(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMonitor")
	defer span.End()

	guildID := strings.TrimSpace(r.PathValue("guildID"))

	var req addMonitorRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.monitorService.Watch(ctx, guildID, req.ChannelID); err != nil {
		h.logger.WarnContext(ctx, "add monitor failed", "guild_id", guildID, "channel_id", req.ChannelID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]string{
		"guildId":   guildID,
		"channelId": req.ChannelID,
	})
}

func (h *Handler) RemoveMonitor(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveMonitor")
	defer span.End()

	guildID := strings.TrimSpace(r.PathValue("guildID"))
	channelID := strings.TrimSpace(r.PathValue("channelID"))

	if err := h.monitorService.Unwatch(ctx, guildID, channelID); err != nil {
		h.logger.WarnContext(ctx, "remove monitor failed", "guild_id", guildID, "channel_id", channelID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ListMonitors(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMonitors")
	defer span.End()

	guildID := strings.TrimSpace(r.PathValue("guildID"))

	channels, err := h.monitorService.List(ctx, guildID)
	if err != nil {
		h.logger.WarnContext(ctx, "list monitors failed", "guild_id", guildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]monitorDTO, 0, len(channels))
	for _, item := range channels {
		items = append(items, monitorDTO{
			GuildID:   item.GuildID,
			ChannelID: item.ChannelID,
			AddedAt:   item.AddedAt.UTC().Format(time.RFC3339),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
