package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

type MockCatalogRepo struct {
	domain.CatalogRepository
	UpsertFunc          func(ctx context.Context, record domain.MovieRecord) (domain.ImportOutcome, error)
	ListUnenrichedFunc  func(ctx context.Context, limit int) ([]*domain.Movie, error)
	ApplyEnrichmentFunc func(ctx context.Context, movieID int, e domain.Enrichment) error
	ListTitlesFunc      func(ctx context.Context) ([]domain.TitleEntry, error)
	DeleteMoviesFunc    func(ctx context.Context, ids []int) (int, error)
	StatsFunc           func(ctx context.Context) (domain.CatalogStats, error)
}

func (m *MockCatalogRepo) Upsert(ctx context.Context, record domain.MovieRecord) (domain.ImportOutcome, error) {
	return m.UpsertFunc(ctx, record)
}

func (m *MockCatalogRepo) ListUnenriched(ctx context.Context, limit int) ([]*domain.Movie, error) {
	return m.ListUnenrichedFunc(ctx, limit)
}

func (m *MockCatalogRepo) ApplyEnrichment(ctx context.Context, movieID int, e domain.Enrichment) error {
	return m.ApplyEnrichmentFunc(ctx, movieID, e)
}

func (m *MockCatalogRepo) ListTitles(ctx context.Context) ([]domain.TitleEntry, error) {
	return m.ListTitlesFunc(ctx)
}

func (m *MockCatalogRepo) DeleteMovies(ctx context.Context, ids []int) (int, error) {
	return m.DeleteMoviesFunc(ctx, ids)
}

func (m *MockCatalogRepo) Stats(ctx context.Context) (domain.CatalogStats, error) {
	return m.StatsFunc(ctx)
}
