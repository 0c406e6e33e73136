// Command catalogctl runs the offline catalog jobs: schema migrations, file
// import, TMDB enrichment, duplicate cleanup and statistics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/app"
	"github.com/metinatakli/movie-catalog/internal/catalog"
	"github.com/metinatakli/movie-catalog/internal/config"
	"github.com/metinatakli/movie-catalog/internal/repository"
	"github.com/metinatakli/movie-catalog/internal/tmdb"
	"github.com/metinatakli/movie-catalog/internal/validator"
	"github.com/metinatakli/movie-catalog/internal/vcs"
	"github.com/metinatakli/movie-catalog/migrations"
)

const usage = `Usage: catalogctl [-config path] <command> [flags]

Commands:
  migrate [-down]           apply (or roll back) the database schema
  import  [-file path]      import a JSON array of movie records
  enrich  [-limit n]        match un-enriched movies against TMDB
  dedupe  [-dry-run]        delete un-enriched duplicates of enriched movies
  stats                     print catalog enrichment statistics
  version                   print the build version
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("catalogctl", flag.ContinueOnError)
	configPath := global.String("config", "", "Path to a YAML config file (overrides CONFIG_PATH)")
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }

	if err := global.Parse(args); err != nil {
		return err
	}

	if global.NArg() == 0 {
		global.Usage()
		return errors.New("no command given")
	}

	command, cmdArgs := global.Arg(0), global.Args()[1:]

	if command == "version" {
		fmt.Fprintf(out, "Version:\t%s\n", vcs.Version())
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "migrate":
		return runMigrate(cfg, cmdArgs, logger)
	case "import", "enrich", "dedupe", "stats":
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", command)
	}

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	switch command {
	case "import":
		return runImport(ctx, db, cmdArgs, logger, out)
	case "enrich":
		return runEnrich(ctx, cfg, db, cmdArgs, logger, out)
	case "dedupe":
		return runDedupe(ctx, db, cmdArgs, logger, out)
	default:
		return runStats(ctx, db, logger, out)
	}
}

func runMigrate(cfg *config.Config, args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	down := fs.Bool("down", false, "Roll back every migration")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *down {
		if err := migrations.Down(cfg.DB.DSN); err != nil {
			return err
		}
		logger.Info("migrations rolled back")
		return nil
	}

	if err := migrations.Up(cfg.DB.DSN); err != nil {
		return err
	}
	logger.Info("migrations applied")

	return nil
}

func runImport(ctx context.Context, db *pgxpool.Pool, args []string, logger *slog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	file := fs.String("file", "enriched_movies.json", "JSON file with movie records")

	if err := fs.Parse(args); err != nil {
		return err
	}

	importer := catalog.NewImporter(repository.NewPostgresCatalogRepository(db), validator.NewValidator(), logger)

	report, err := importer.ImportFile(ctx, *file)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "imported: %d\nupdated: %d\nskipped: %d\ninvalid: %d\nfailed: %d\n",
		report.Imported, report.Updated, report.Skipped, report.Invalid, report.Failed)

	return nil
}

func runEnrich(ctx context.Context, cfg *config.Config, db *pgxpool.Pool, args []string, logger *slog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("enrich", flag.ContinueOnError)
	limit := fs.Int("limit", 0, "Maximum number of movies to process (0 means all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	client := tmdb.NewClient(tmdb.Config{
		APIKey:            cfg.TMDB.APIKey,
		BaseURL:           cfg.TMDB.BaseURL,
		Timeout:           cfg.TMDB.Timeout,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
		CircuitBreaker:    true,
	}, logger)

	if !client.Configured() {
		return errors.New("TMDB_API_KEY is not set")
	}

	enricher := catalog.NewEnricher(repository.NewPostgresCatalogRepository(db), client, logger)

	report, err := enricher.Run(ctx, *limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "processed: %d\nenriched: %d\nnot found: %d\nduplicates: %d\nfailed: %d\n",
		report.Processed, report.Enriched, report.NotFound, report.Duplicates, report.Failed)

	return nil
}

func runDedupe(ctx context.Context, db *pgxpool.Pool, args []string, logger *slog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("dedupe", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "List duplicates without deleting them")

	if err := fs.Parse(args); err != nil {
		return err
	}

	report, err := catalog.NewMaintenance(repository.NewPostgresCatalogRepository(db), logger).Dedupe(ctx, *dryRun)
	if err != nil {
		return err
	}

	for _, d := range report.Duplicates {
		fmt.Fprintf(out, "duplicate: %d %q\n", d.ID, d.Title)
	}
	fmt.Fprintf(out, "deleted: %d\n", report.Deleted)

	return nil
}

func runStats(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger, out io.Writer) error {
	stats, err := catalog.NewMaintenance(repository.NewPostgresCatalogRepository(db), logger).Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "total: %d\nenriched: %d\nunenriched: %d\nenrichment rate: %.1f%%\n",
		stats.Total, stats.Enriched, stats.Unenriched, stats.EnrichmentRate())

	return nil
}
