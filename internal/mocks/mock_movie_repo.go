package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc  func(ctx context.Context, query domain.CatalogQuery) ([]*domain.Movie, int, error)
	GetByIDFunc func(ctx context.Context, id int) (*domain.Movie, error)
}

func (m *MockMovieRepo) GetAll(ctx context.Context, query domain.CatalogQuery) ([]*domain.Movie, int, error) {
	return m.GetAllFunc(ctx, query)
}

func (m *MockMovieRepo) GetByID(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetByIDFunc(ctx, id)
}
