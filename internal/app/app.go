package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/sean-m-sweeney/nhl-edge-report/external/nhl"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/config"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/infrastructure/repository/postgres"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/interfaces/httpapi"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/platform/logging"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/platform/resilience"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

// OpenDB connects to Postgres with OpenTelemetry instrumentation on every
// query.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func NewHTTPServer(cfg config.Config, db *sqlx.DB, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	playerRepo := postgres.NewPlayerRepository(db)
	goalieRepo := postgres.NewGoalieRepository(db)
	teamStatsRepo := postgres.NewTeamStatsRepository(db)
	metaRepo := postgres.NewMetaRepository(db)

	nhlClient := nhl.NewClient(nhl.ClientConfig{
		StatsBaseURL: cfg.NHLStatsBaseURL,
		WebBaseURL:   cfg.NHLWebBaseURL,
		Timeout:      cfg.NHLTimeout,
		MaxRetries:   cfg.NHLMaxRetries,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLCircuitEnabled,
			FailureThreshold: cfg.NHLCircuitFailureCount,
			OpenTimeout:      cfg.NHLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLCircuitHalfOpenMaxReq,
		},
	})

	refreshSvc := usecase.NewRefreshService(
		nhlClient,
		playerRepo,
		goalieRepo,
		teamStatsRepo,
		metaRepo,
		usecase.RefreshConfig{
			MinGamesPlayed:   cfg.MinGamesPlayed,
			Freshness:        cfg.Freshness,
			SeasonStartMonth: cfg.SeasonStartMonth,
			TeamFilter:       cfg.TeamFilter,
			Workers:          cfg.EdgeFetchWorkers,
			Pause:            cfg.EdgeFetchPause,
		},
		logger,
	)

	playerSvc := usecase.NewPlayerService(playerRepo)
	goalieSvc := usecase.NewGoalieService(goalieRepo)
	teamSvc := usecase.NewTeamService(teamStatsRepo, playerRepo, metaRepo, cfg.Freshness)

	handler := httpapi.NewHandler(playerSvc, goalieSvc, teamSvc, refreshSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.RefreshAPIKey)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, nil
}
