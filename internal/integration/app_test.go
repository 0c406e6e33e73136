package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/app"
	"github.com/metinatakli/movie-catalog/internal/config"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/repository"
	"github.com/metinatakli/movie-catalog/internal/tmdb"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Config *config.Config
}

func newTestApp(cfg *config.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:    newApplication(cfg, logger, db, app.NewTrailerClient(cfg, logger)),
		DB:     db,
		Config: cfg,
	}, nil
}

func newApplication(cfg *config.Config, logger *slog.Logger, db *pgxpool.Pool, videos domain.VideoProvider) *app.Application {
	return app.NewApp(
		cfg,
		logger,
		db,
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresGenreRepository(db),
		videos,
	)
}

// newEnrichmentClient mirrors the client catalogctl enrich builds.
func newEnrichmentClient(cfg *config.Config, logger *slog.Logger) *tmdb.Client {
	return tmdb.NewClient(tmdb.Config{
		APIKey:            cfg.TMDB.APIKey,
		BaseURL:           cfg.TMDB.BaseURL,
		Timeout:           cfg.TMDB.Timeout,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
		CircuitBreaker:    true,
	}, logger)
}
