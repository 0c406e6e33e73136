package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/metrics"
)

type DedupeReport struct {
	RunID      string
	Duplicates []domain.TitleEntry
	Deleted    int
}

type Maintenance struct {
	repo   domain.CatalogRepository
	logger *slog.Logger
}

func NewMaintenance(repo domain.CatalogRepository, logger *slog.Logger) *Maintenance {
	return &Maintenance{
		repo:   repo,
		logger: logger,
	}
}

// Dedupe removes un-enriched movies whose normalised title matches an enriched
// one. With dryRun set the duplicates are reported but nothing is deleted.
func (m *Maintenance) Dedupe(ctx context.Context, dryRun bool) (DedupeReport, error) {
	report := DedupeReport{RunID: uuid.NewString()}
	logger := m.logger.With("job", jobDedupe, "run_id", report.RunID)

	entries, err := m.repo.ListTitles(ctx)
	if err != nil {
		return report, fmt.Errorf("list titles: %w", err)
	}

	report.Duplicates = FindDuplicates(entries)

	logger.Info("duplicates found", "count", len(report.Duplicates), "dry_run", dryRun)

	if dryRun || len(report.Duplicates) == 0 {
		return report, nil
	}

	ids := make([]int, len(report.Duplicates))
	for i, d := range report.Duplicates {
		ids[i] = d.ID
	}

	report.Deleted, err = m.repo.DeleteMovies(ctx, ids)
	if err != nil {
		return report, fmt.Errorf("delete duplicates: %w", err)
	}

	metrics.JobRecordsTotal.WithLabelValues(jobDedupe, "deleted").Add(float64(report.Deleted))

	logger.Info("duplicates deleted", "deleted", report.Deleted)

	return report, nil
}

// FindDuplicates returns the un-enriched entries whose normalised title is
// shared with an enriched entry, in input order.
func FindDuplicates(entries []domain.TitleEntry) []domain.TitleEntry {
	enriched := make(map[string]struct{})
	for _, e := range entries {
		if e.Enriched {
			enriched[domain.NormalizeTitle(e.Title)] = struct{}{}
		}
	}

	duplicates := []domain.TitleEntry{}
	for _, e := range entries {
		if e.Enriched {
			continue
		}
		if _, ok := enriched[domain.NormalizeTitle(e.Title)]; ok {
			duplicates = append(duplicates, e)
		}
	}

	return duplicates
}

func (m *Maintenance) Stats(ctx context.Context) (domain.CatalogStats, error) {
	stats, err := m.repo.Stats(ctx)
	if err != nil {
		return stats, fmt.Errorf("catalog stats: %w", err)
	}

	return stats, nil
}
