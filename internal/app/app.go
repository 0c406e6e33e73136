package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/config"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/middleware"
	"github.com/metinatakli/movie-catalog/internal/repository"
	"github.com/metinatakli/movie-catalog/internal/tmdb"
	"github.com/metinatakli/movie-catalog/internal/vcs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riandyrn/otelchi"
)

const serviceName = "movie-catalog-api"

var (
	version = vcs.Version()
)

type Application struct {
	config *config.Config
	logger *slog.Logger
	db     *pgxpool.Pool

	movieRepo domain.MovieRepository
	genreRepo domain.GenreRepository

	videoProvider domain.VideoProvider
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	movieRepo domain.MovieRepository,
	genreRepo domain.GenreRepository,
	videoProvider domain.VideoProvider,
) *Application {
	return &Application{
		config:        cfg,
		logger:        logger,
		db:            db,
		movieRepo:     movieRepo,
		genreRepo:     genreRepo,
		videoProvider: videoProvider,
	}
}

func Run() error {
	configPath := flag.String("config", "", "Path to a YAML config file (overrides CONFIG_PATH)")
	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	tmdbClient := NewTrailerClient(cfg, app.logger)

	if !tmdbClient.Configured() {
		app.logger.Warn("TMDB API key not set, trailer lookups will fail")
	}

	app.db = db
	app.movieRepo = repository.NewPostgresMovieRepository(db)
	app.genreRepo = repository.NewPostgresGenreRepository(db)
	app.videoProvider = tmdbClient

	return app.serve()
}

// NewTrailerClient builds the TMDB client used on the request path. Lookups are
// independent of each other, so it has neither pacing nor a circuit breaker.
func NewTrailerClient(cfg *config.Config, logger *slog.Logger) *tmdb.Client {
	return tmdb.NewClient(tmdb.Config{
		APIKey:  cfg.TMDB.APIKey,
		BaseURL: cfg.TMDB.BaseURL,
		Timeout: cfg.TMDB.Timeout,
	}, logger)
}

// NewLogger returns a text logger for local environments and a JSON logger otherwise.
func NewLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func NewDatabasePool(cfg *config.Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(middleware.NotFoundHandler)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(app.logRequest)
	r.Use(middleware.RecoverPanic(app.logger))
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.CORS(app.config.CORS.Origins))
	r.Use(middleware.RateLimit(app.config.RateLimit.Requests, app.config.RateLimit.Window, app.config.RateLimit.Disabled))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/openapi.json", app.openAPISpec)

	api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: app.invalidParamResponse,
	})

	return r
}

func (app *Application) openAPISpec(w http.ResponseWriter, r *http.Request) {
	swagger, err := api.GetSwagger()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, swagger, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
