// Package catalog runs the offline jobs that write the catalog: importing
// movie files, enriching movies from TMDB and maintenance.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/jsonutil"
	"github.com/metinatakli/movie-catalog/internal/metrics"
	appvalidator "github.com/metinatakli/movie-catalog/internal/validator"
)

const (
	jobImport = "import"
	jobEnrich = "enrich"
	jobDedupe = "dedupe"
)

type ImportReport struct {
	RunID    string
	Imported int
	Updated  int
	Skipped  int
	Invalid  int
	Failed   int
}

type Importer struct {
	repo      domain.CatalogRepository
	validator *validator.Validate
	logger    *slog.Logger
}

func NewImporter(repo domain.CatalogRepository, validator *validator.Validate, logger *slog.Logger) *Importer {
	return &Importer{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

func (i *Importer) ImportFile(ctx context.Context, path string) (ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportReport{}, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	return i.Import(ctx, f)
}

// Import reads a JSON array of movie records and writes them one transaction
// at a time. Records that fail to decode or validate are counted as invalid
// and skipped. An unavailable store aborts the run.
func (i *Importer) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	report := ImportReport{RunID: uuid.NewString()}
	logger := i.logger.With("job", jobImport, "run_id", report.RunID)

	var raws []json.RawMessage
	if err := jsonutil.DecodeStrict(r, &raws); err != nil {
		return report, err
	}

	logger.Info("import started", "records", len(raws))

	for n, raw := range raws {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		record, err := i.parseRecord(raw)
		if err != nil {
			report.Invalid++
			metrics.RecordJobRecord(jobImport, "invalid")
			logger.Warn("skipping invalid record", "index", n, "error", err)
			continue
		}

		outcome, err := i.repo.Upsert(ctx, record)
		if err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return report, err
			}

			report.Failed++
			metrics.RecordJobRecord(jobImport, "failed")
			logger.Error("failed to import record", "index", n, "title", record.Title, "error", err)
			continue
		}

		switch outcome {
		case domain.OutcomeInserted:
			report.Imported++
		case domain.OutcomeUpdated:
			report.Updated++
		case domain.OutcomeSkipped:
			report.Skipped++
		}
		metrics.RecordJobRecord(jobImport, outcome.String())

		if (n+1)%100 == 0 {
			logger.Info("import progress", "processed", n+1, "total", len(raws))
		}
	}

	logger.Info("import finished",
		"imported", report.Imported,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"invalid", report.Invalid,
		"failed", report.Failed,
	)

	return report, nil
}

func (i *Importer) parseRecord(raw json.RawMessage) (domain.MovieRecord, error) {
	var record domain.MovieRecord

	if err := json.Unmarshal(raw, &record); err != nil {
		return record, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}

	if err := i.validator.Struct(record); err != nil {
		return record, fmt.Errorf("%w: %s", domain.ErrInvalidRecord, appvalidator.Describe(err))
	}

	return record, nil
}
