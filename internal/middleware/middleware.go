package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/jsonutil"
)

const (
	ErrInternalServer   = "The server encountered a problem and could not process your request"
	ErrNotFound         = "The requested resource not found"
	ErrMethodNotAllowed = "The method is not supported for this resource"
	ErrTooManyRequests  = "Rate limit exceeded, slow down"

	// MovieListPath is the catalog query route. Its error bodies keep the list
	// shape so clients can render an empty page.
	MovieListPath = "/api/movies"
)

func RecoverPanic(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error(fmt.Sprintf("panic: %v", err), "method", r.Method, "uri", r.URL.RequestURI(),
						"request_id", middleware.GetReqID(r.Context()))

					WriteError(w, r, http.StatusInternalServerError, ErrInternalServer, http.Header{
						"Connection": []string{"close"},
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, ErrNotFound, nil)
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed, nil)
}

// WriteError writes the standard error body. A failure to write is ignored,
// the connection is already unusable at that point.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string, headers http.Header) {
	_ = jsonutil.WriteJSON(w, status, ErrorBody(r, message), headers)
}

// ErrorBody returns the error payload for the request: an empty movie list
// with a zero total on the catalog query route, the standard error body
// everywhere else.
func ErrorBody(r *http.Request, message string) any {
	if IsMovieListRequest(r) {
		return api.MovieListErrorResponse{
			Error:  message,
			Movies: []api.Movie{},
			Total:  0,
		}
	}

	return api.ErrorResponse{
		Error:     message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}
}

func IsMovieListRequest(r *http.Request) bool {
	return strings.TrimSuffix(r.URL.Path, "/") == MovieListPath
}
