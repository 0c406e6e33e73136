package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

func (app *Application) GetTrailer(w http.ResponseWriter, r *http.Request, params api.GetTrailerParams) {
	logger := app.contextGetLogger(r)

	raw := strings.TrimSpace(deref(params.TmdbId))
	if raw == "" {
		app.badRequestResponse(w, r, fmt.Errorf("tmdbId is required"))
		return
	}

	tmdbID, err := strconv.Atoi(raw)
	if err != nil || tmdbID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("tmdbId must be a positive integer"))
		return
	}

	resp := api.TrailerResponse{}

	videos, err := app.videoProvider.MovieVideos(r.Context(), tmdbID)
	switch {
	case err == nil:
		if url, ok := domain.SelectTrailer(videos); ok {
			resp.TrailerUrl = &url
			resp.Found = true
		}
	case errors.Is(err, domain.ErrRecordNotFound):
		logger.Info("tmdb has no movie for id", "tmdb_id", tmdbID)
	case errors.Is(err, domain.ErrProviderNotConfigured):
		app.misconfiguredResponse(w, r, err)
		return
	default:
		logger.Error("failed to fetch videos from tmdb", "tmdb_id", tmdbID, "error", err)
		app.errorResponse(w, r, http.StatusInternalServerError, ErrTrailerUnavailable)
		return
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
