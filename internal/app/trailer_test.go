package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/config"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/mocks"
)

func TestGetTrailer(t *testing.T) {
	tests := []struct {
		name            string
		tmdbId          *string
		movieVideosFunc func(context.Context, int) ([]domain.Video, error)
		wantStatus      int
		wantErrMessage  string
		wantResponse    *api.TrailerResponse
	}{
		{
			name:   "official trailer preferred",
			tmdbId: ptr("603"),
			movieVideosFunc: func(ctx context.Context, id int) ([]domain.Video, error) {
				if id != 603 {
					t.Errorf("tmdb id = %d, want 603", id)
				}
				return []domain.Video{
					{Key: "fan", Site: "YouTube", Type: "Trailer"},
					{Key: "official", Site: "YouTube", Type: "Trailer", Official: true},
				}, nil
			},
			wantStatus:   http.StatusOK,
			wantResponse: &api.TrailerResponse{TrailerUrl: ptr("https://www.youtube.com/watch?v=official"), Found: true},
		},
		{
			name:   "no videos",
			tmdbId: ptr("603"),
			movieVideosFunc: func(ctx context.Context, id int) ([]domain.Video, error) {
				return []domain.Video{}, nil
			},
			wantStatus:   http.StatusOK,
			wantResponse: &api.TrailerResponse{TrailerUrl: nil, Found: false},
		},
		{
			name:   "unknown tmdb id is not an error",
			tmdbId: ptr("999999999"),
			movieVideosFunc: func(ctx context.Context, id int) ([]domain.Video, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:   http.StatusOK,
			wantResponse: &api.TrailerResponse{Found: false},
		},
		{
			name:           "missing id",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "tmdbId is required",
		},
		{
			name:           "non-numeric id",
			tmdbId:         ptr("abc"),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "tmdbId must be a positive integer",
		},
		{
			name:           "negative id",
			tmdbId:         ptr("-3"),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "tmdbId must be a positive integer",
		},
		{
			name:   "missing credential",
			tmdbId: ptr("603"),
			movieVideosFunc: func(ctx context.Context, id int) ([]domain.Video, error) {
				return nil, domain.ErrProviderNotConfigured
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrTrailerNotSetUp,
		},
		{
			name:   "upstream failure",
			tmdbId: ptr("603"),
			movieVideosFunc: func(ctx context.Context, id int) ([]domain.Video, error) {
				return nil, errors.New("tmdb: unexpected status 503")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrTrailerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.videoProvider = &mocks.MockVideoProvider{MovieVideosFunc: tt.movieVideosFunc}
			})

			w, r := executeRequest(t, http.MethodGet, "/api/trailer")

			app.GetTrailer(w, r, api.GetTrailerParams{TmdbId: tt.tmdbId})

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetTrailer() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response api.TrailerResponse
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(tt.wantResponse, &response); diff != "" {
					t.Errorf("GetTrailer() response mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestGetTrailerWritesExplicitNull(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.videoProvider = &mocks.MockVideoProvider{
			MovieVideosFunc: func(ctx context.Context, id int) ([]domain.Video, error) {
				return nil, nil
			},
		}
	})

	w, r := executeRequest(t, http.MethodGet, "/api/trailer?tmdbId=1")
	app.GetTrailer(w, r, api.GetTrailerParams{TmdbId: ptr("1")})

	if got, want := w.Body.String(), "{\"found\":false,\"trailerUrl\":null}\n"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestTrailerLookupsRecoverWithUpstream(t *testing.T) {
	var (
		calls   atomic.Int32
		healthy atomic.Bool
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":603,"results":[{"key":"abc","site":"YouTube","type":"Trailer","official":true}]}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.TMDB = config.TMDBConfig{APIKey: "key", BaseURL: srv.URL, Timeout: time.Second, RequestsPerSecond: 4}

	app := newTestApplication(func(a *Application) {
		a.config = cfg
		a.videoProvider = NewTrailerClient(cfg, a.logger)
	})

	const failures = 10

	for i := 0; i < failures; i++ {
		w, r := executeRequest(t, http.MethodGet, "/api/trailer?tmdbId=603")
		app.GetTrailer(w, r, api.GetTrailerParams{TmdbId: ptr("603")})

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("request %d: status = %d, want %d", i, w.Code, http.StatusInternalServerError)
		}
	}

	healthy.Store(true)

	w, r := executeRequest(t, http.MethodGet, "/api/trailer?tmdbId=550")
	app.GetTrailer(w, r, api.GetTrailerParams{TmdbId: ptr("550")})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var got api.TrailerResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := api.TrailerResponse{Found: true, TrailerUrl: ptr("https://www.youtube.com/watch?v=abc")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}

	if n := calls.Load(); n != failures+1 {
		t.Errorf("upstream received %d requests, want %d", n, failures+1)
	}
}
