package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

type MockVideoProvider struct {
	MovieVideosFunc func(ctx context.Context, tmdbID int) ([]domain.Video, error)
}

func (m *MockVideoProvider) MovieVideos(ctx context.Context, tmdbID int) ([]domain.Video, error) {
	return m.MovieVideosFunc(ctx, tmdbID)
}

type MockMetadataProvider struct {
	SearchMovieFunc  func(ctx context.Context, title string) (*domain.MovieMatch, error)
	MovieDetailsFunc func(ctx context.Context, tmdbID int) (*domain.MovieDetails, error)
}

func (m *MockMetadataProvider) SearchMovie(ctx context.Context, title string) (*domain.MovieMatch, error) {
	return m.SearchMovieFunc(ctx, title)
}

func (m *MockMetadataProvider) MovieDetails(ctx context.Context, tmdbID int) (*domain.MovieDetails, error) {
	return m.MovieDetailsFunc(ctx, tmdbID)
}
