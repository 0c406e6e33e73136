package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/metrics"
)

const (
	outcomeEnriched  = "enriched"
	outcomeNotFound  = "not_found"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

type EnrichReport struct {
	RunID      string
	Processed  int
	Enriched   int
	NotFound   int
	Duplicates int
	Failed     int
}

type Enricher struct {
	repo     domain.CatalogRepository
	provider domain.MetadataProvider
	logger   *slog.Logger
}

func NewEnricher(repo domain.CatalogRepository, provider domain.MetadataProvider, logger *slog.Logger) *Enricher {
	return &Enricher{
		repo:     repo,
		provider: provider,
		logger:   logger,
	}
}

// Run enriches up to limit un-enriched movies, all of them when limit is not
// positive. Movies are handled one after another; request pacing is left to
// the provider.
func (e *Enricher) Run(ctx context.Context, limit int) (EnrichReport, error) {
	report := EnrichReport{RunID: uuid.NewString()}
	logger := e.logger.With("job", jobEnrich, "run_id", report.RunID)

	movies, err := e.repo.ListUnenriched(ctx, limit)
	if err != nil {
		return report, fmt.Errorf("list unenriched movies: %w", err)
	}

	logger.Info("enrichment started", "movies", len(movies))

	for _, movie := range movies {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Processed++

		outcome, err := e.enrichMovie(ctx, movie)
		if err != nil {
			if errors.Is(err, domain.ErrProviderNotConfigured) || errors.Is(err, domain.ErrStoreUnavailable) {
				return report, err
			}

			logger.Error("failed to enrich movie", "movie_id", movie.ID, "title", movie.Title, "error", err)
			outcome = outcomeFailed
		}

		switch outcome {
		case outcomeEnriched:
			report.Enriched++
		case outcomeNotFound:
			report.NotFound++
			logger.Info("no tmdb match", "movie_id", movie.ID, "title", movie.Title)
		case outcomeDuplicate:
			report.Duplicates++
			logger.Warn("tmdb id already used by another movie", "movie_id", movie.ID, "title", movie.Title)
		case outcomeFailed:
			report.Failed++
		}
		metrics.RecordJobRecord(jobEnrich, outcome)
	}

	logger.Info("enrichment finished",
		"processed", report.Processed,
		"enriched", report.Enriched,
		"not_found", report.NotFound,
		"duplicates", report.Duplicates,
		"failed", report.Failed,
	)

	return report, nil
}

func (e *Enricher) enrichMovie(ctx context.Context, movie *domain.Movie) (string, error) {
	match, err := e.search(ctx, movie.Title)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return outcomeNotFound, nil
		}
		return "", err
	}

	details, err := e.provider.MovieDetails(ctx, match.TmdbID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return outcomeNotFound, nil
		}
		return "", fmt.Errorf("fetch details for tmdb id %d: %w", match.TmdbID, err)
	}

	err = e.repo.ApplyEnrichment(ctx, movie.ID, domain.NewEnrichment(*details))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateExternalID) {
			return outcomeDuplicate, nil
		}
		return "", fmt.Errorf("apply enrichment: %w", err)
	}

	return outcomeEnriched, nil
}

// search tries each title variant in turn and returns the first hit.
func (e *Enricher) search(ctx context.Context, title string) (*domain.MovieMatch, error) {
	for _, candidate := range domain.SearchTitles(title) {
		match, err := e.provider.SearchMovie(ctx, candidate)
		if err == nil {
			return match, nil
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("search %q: %w", candidate, err)
		}
	}

	return nil, domain.ErrRecordNotFound
}
