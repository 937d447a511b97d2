package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/groupgrid/connections-tracker/internal/config"
	"github.com/groupgrid/connections-tracker/internal/domain/monitor"
	"github.com/groupgrid/connections-tracker/internal/domain/result"
	"github.com/groupgrid/connections-tracker/internal/infrastructure/chatapi"
	"github.com/groupgrid/connections-tracker/internal/infrastructure/repository/memory"
	"github.com/groupgrid/connections-tracker/internal/infrastructure/repository/postgres"
	"github.com/groupgrid/connections-tracker/internal/interfaces/httpapi"
	"github.com/groupgrid/connections-tracker/internal/platform/cache"
	"github.com/groupgrid/connections-tracker/internal/platform/logging"
	"github.com/groupgrid/connections-tracker/internal/usecase"
)

// NewHTTPServer wires repositories, services and the router into a
// ready-to-run server. The returned cleanup closes owned resources and
// is safe to call after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	var resultRepo result.Repository
	var monitorRepo monitor.Repository
	cleanup := func() {}

	if strings.TrimSpace(cfg.DBURL) != "" {
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}

		cellDefTTL := time.Duration(0)
		if cfg.CacheEnabled {
			cellDefTTL = cfg.CacheTTL
		}

		resultRepo = postgres.NewResultRepository(db, cache.NewStore(cellDefTTL))
		monitorRepo = postgres.NewMonitorRepository(db)
		cleanup = func() { _ = db.Close() }
		logger.Info("using postgres repositories", "db", dbNameFromURL(cfg.DBURL))
	} else {
		resultRepo = memory.NewResultRepository()
		monitorRepo = memory.NewMonitorRepository()
		logger.Info("DB_URL empty, using in-memory repositories")
	}

	var history usecase.ChannelHistory
	if cfg.ChatEnabled {
		history = chatapi.NewClient(chatapi.ClientConfig{
			BaseURL:    cfg.ChatBaseURL,
			Token:      cfg.ChatToken,
			Timeout:    cfg.ChatTimeout,
			MaxRetries: cfg.ChatMaxRetries,
			Logger:     logger,
		})
	}

	ingestSvc := usecase.NewIngestService(resultRepo, monitorRepo, history, logger).
		WithGatherTuning(cfg.GatherPageSize, cfg.GatherWorkers)
	statsSvc := usecase.NewStatsService(resultRepo)
	monitorSvc := usecase.NewMonitorService(monitorRepo)

	handler := httpapi.NewHandler(ingestSvc, statsSvc, monitorSvc, logger)
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
