package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/groupgrid/connections-tracker/internal/usecase"
)

type ingestMessageRequest struct {
	GuildID   string `json:"guild_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
	AuthorID  string `json:"author_id" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Timestamp string `json:"timestamp"`
}

type ingestMessageResponse struct {
	Status string `json:"status"`
}

type gatherResponse struct {
	Pages         int    `json:"pages"`
	Scanned       int    `json:"scanned"`
	Stored        int    `json:"stored"`
	Duplicates    int    `json:"duplicates"`
	Skipped       int    `json:"skipped"`
	LastMessageID string `json:"lastMessageId,omitempty"`
}

func (h *Handler) IngestMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestMessage")
	defer span.End()

	var req ingestMessageRequest
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

	timestamp := time.Now().UTC()
	if strings.TrimSpace(req.Timestamp) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Timestamp))
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid timestamp", usecase.ErrInvalidInput))
			return
		}
		timestamp = parsed.UTC()
	}

	status, err := h.ingestService.HandleMessage(ctx, usecase.ChatMessage{
		GuildID:   req.GuildID,
		ChannelID: req.ChannelID,
		AuthorID:  req.AuthorID,
		Content:   req.Content,
		Timestamp: timestamp,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "ingest message failed", "guild_id", req.GuildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	httpStatus := http.StatusOK
	if status == usecase.IngestStored {
		httpStatus = http.StatusCreated
	}
	writeSuccess(ctx, w, httpStatus, ingestMessageResponse{Status: string(status)})
}

func (h *Handler) GatherChannel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GatherChannel")
	defer span.End()

	guildID := strings.TrimSpace(r.PathValue("guildID"))
	channelID := strings.TrimSpace(r.PathValue("channelID"))

	report, err := h.ingestService.Gather(ctx, guildID, channelID)
	if err != nil {
		h.logger.WarnContext(ctx, "gather failed", "guild_id", guildID, "channel_id", channelID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gatherResponse{
		Pages:         report.Pages,
		Scanned:       report.Scanned,
		Stored:        report.Stored,
		Duplicates:    report.Duplicates,
		Skipped:       report.Skipped,
		LastMessageID: report.LastMessageID,
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
