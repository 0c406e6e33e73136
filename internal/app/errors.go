package app

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/movie-catalog/api"
	appmiddleware "github.com/metinatakli/movie-catalog/internal/middleware"
)

const (
	ErrInternalServer     = appmiddleware.ErrInternalServer
	ErrNotFound           = appmiddleware.ErrNotFound
	ErrCatalogUnavailable = "The movie catalog could not be loaded"
	ErrTrailerUnavailable = "The trailer provider could not be reached"
	ErrTrailerNotSetUp    = "Trailer lookup is not configured on this server"
)

func (app *Application) logError(r *http.Request, err error) {
	app.contextGetLogger(r).Error(err.Error())
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code. Errors on the catalog query
// route keep the movie list shape.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	err := app.writeJSON(w, status, appmiddleware.ErrorBody(r, message), nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// misconfiguredResponse reports a missing server-side setting such as the TMDB key.
func (app *Application) misconfiguredResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrTrailerNotSetUp)
}

// catalogErrorResponse answers a failed catalog query with the list shape: an
// empty page, a zero total and the error message.
func (app *Application) catalogErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	resp := api.MovieListErrorResponse{
		Error:  ErrCatalogUnavailable,
		Movies: []api.Movie{},
		Total:  0,
	}

	err = app.writeJSON(w, http.StatusInternalServerError, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

// invalidParamResponse handles parameters the generated router could not bind.
func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.badRequestResponse(w, r, fmt.Errorf("invalid request parameters: %w", err))
}
