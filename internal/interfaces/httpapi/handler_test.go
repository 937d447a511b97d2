package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/groupgrid/connections-tracker/internal/domain/monitor"
	"github.com/groupgrid/connections-tracker/internal/infrastructure/repository/memory"
	"github.com/groupgrid/connections-tracker/internal/platform/logging"
	"github.com/groupgrid/connections-tracker/internal/usecase"
)

const shareBody = `{"guild_id":"g1","channel_id":"c1","author_id":"u1","content":"Puzzle #310\n🟨🟨🟨🟨\n🟩🟩🟩🟩\n🟦🟦🟦🟦\n🟪🟪🟪🟪"}`

func newTestRouter(t *testing.T) (http.Handler, *memory.ResultRepository, *memory.MonitorRepository) {
	t.Helper()

	resultRepo := memory.NewResultRepository()
	monitorRepo := memory.NewMonitorRepository()
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewIngestService(resultRepo, monitorRepo, nil, logger),
		usecase.NewStatsService(resultRepo),
		usecase.NewMonitorService(monitorRepo),
		logger,
	)
	return NewRouter(handler, logger, nil), resultRepo, monitorRepo
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_IngestMessage_StoresShare(t *testing.T) {
	router, resultRepo, monitorRepo := newTestRouter(t)
	if err := monitorRepo.Add(t.Context(), monitor.Channel{GuildID: "g1", ChannelID: "c1"}); err != nil {
		t.Fatalf("seed monitor: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(shareBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	results, _, err := resultRepo.CountByGuild(t.Context(), "g1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if results != 1 {
		t.Fatalf("got %d stored results, want 1", results)
	}
}

func TestRouter_IngestMessage_RejectsMissingFields(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"guild_id":"g1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_GetUserStats_UnknownUserIs404(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/guilds/g1/users/ghost/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	if got, _ := errorObj["status"].(string); got != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", errorObj["status"])
	}
}

func TestRouter_GetLeaderboard_EmptyGuild(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/guilds/g1/leaderboard?category=winner", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	if got, _ := data["category"].(string); got != "winner" {
		t.Fatalf("expected category winner, got %v", data["category"])
	}
}

func TestRouter_GetLeaderboard_UnknownCategoryIs400(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/guilds/g1/leaderboard?category=vibes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_MonitorLifecycle(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/guilds/g1/monitors", strings.NewReader(`{"channel_id":"c1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add monitor: expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/guilds/g1/monitors", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list monitors: expected 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one monitored channel, got %v", body["data"])
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/guilds/g1/monitors/c1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove monitor: expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/guilds/g1/monitors/c1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("remove missing monitor: expected 404, got %d", rec.Code)
	}
}
