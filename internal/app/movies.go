package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/config"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request, params api.GetMoviesParams) {
	query := toCatalogQuery(params, app.config.Catalog)

	movies, total, err := app.movieRepo.GetAll(r.Context(), query)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: toApiMovies(movies),
		Total:  total,
		Limit:  query.Limit,
		Offset: query.Offset,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request, movieId int) {
	if movieId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("movie ID must be greater than zero"))
		return
	}

	movie, err := app.movieRepo.GetByID(r.Context(), movieId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieDetailResponse{
		Movie: toApiMovie(movie),
		Cast:  toApiCast(movie.Cast),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toCatalogQuery turns raw query parameters into a bounded CatalogQuery.
// Malformed numbers fall back to the configured defaults instead of failing
// the request.
func toCatalogQuery(params api.GetMoviesParams, cfg config.CatalogConfig) domain.CatalogQuery {
	query := domain.CatalogQuery{
		Term:    strings.TrimSpace(deref(params.Q)),
		Genres:  splitList(deref(params.Genres)),
		Ratings: splitList(deref(params.Ratings)),
		YearMin: parseIntOr(deref(params.YearMin), cfg.DefaultYearMin),
		YearMax: parseIntOr(deref(params.YearMax), cfg.DefaultYearMax),
		Limit:   parseIntOr(deref(params.Limit), cfg.DefaultLimit),
		Offset:  parseIntOr(deref(params.Offset), 0),
	}

	if query.YearMin > query.YearMax {
		query.YearMin, query.YearMax = query.YearMax, query.YearMin
	}

	if query.Limit < 1 {
		query.Limit = cfg.DefaultLimit
	}
	if query.Limit > cfg.MaxLimit {
		query.Limit = cfg.MaxLimit
	}

	if query.Offset < 0 {
		query.Offset = 0
	}

	return query
}

// splitList splits a comma-separated parameter, dropping blanks and repeats
// while keeping the first-seen order.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var (
		items []string
		seen  = make(map[string]struct{})
	)

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}

		seen[part] = struct{}{}
		items = append(items, part)
	}

	return items
}

func parseIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}

	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toApiMovies(movies []*domain.Movie) []api.Movie {
	result := make([]api.Movie, len(movies))

	for i, movie := range movies {
		result[i] = toApiMovie(movie)
	}

	return result
}

func toApiMovie(movie *domain.Movie) api.Movie {
	if movie == nil {
		return api.Movie{}
	}

	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}

	m := api.Movie{
		Id:            movie.ID,
		Title:         movie.Title,
		OriginalTitle: movie.OriginalTitle,
		TmdbId:        movie.TmdbID,
		Runtime:       movie.Runtime,
		Overview:      movie.Overview,
		PosterPath:    movie.PosterPath,
		BackdropPath:  movie.BackdropPath,
		VoteCount:     movie.VoteCount,
		TrailerUrl:    movie.TrailerURL,
		Rating:        movie.Rating,
		Genres:        genres,
	}

	if movie.ReleaseDate != nil {
		m.ReleaseDate = &types.Date{Time: *movie.ReleaseDate}
	}

	if movie.VoteAverage.Valid {
		v := movie.VoteAverage.Decimal.InexactFloat64()
		m.VoteAverage = &v
	}

	if movie.Popularity.Valid {
		v := movie.Popularity.Decimal.InexactFloat64()
		m.Popularity = &v
	}

	return m
}

func toApiCast(cast []domain.CastMember) []api.CastMember {
	result := make([]api.CastMember, len(cast))

	for i, member := range cast {
		result[i] = api.CastMember{
			Name:     member.Name,
			Position: member.Position,
		}
	}

	return result
}
