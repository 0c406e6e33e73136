package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()

	var resp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	return resp
}

func TestRecoverPanic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := RecoverPanic(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/movies", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if got := w.Header().Get("Connection"); got != "close" {
		t.Errorf("Connection = %q, want close", got)
	}
	if resp := decodeError(t, w); resp.Error != ErrInternalServer {
		t.Errorf("error = %q, want %q", resp.Error, ErrInternalServer)
	}
}

func TestErrorBodyOnMovieList(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	panicking := RecoverPanic(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	tests := []struct {
		name        string
		path        string
		wantList    bool
		wantMessage string
	}{
		{name: "catalog query", path: "/api/movies?q=batman", wantList: true, wantMessage: ErrInternalServer},
		{name: "catalog query with trailing slash", path: "/api/movies/", wantList: true, wantMessage: ErrInternalServer},
		{name: "movie detail", path: "/api/movies/5", wantMessage: ErrInternalServer},
		{name: "genres", path: "/api/genres", wantMessage: ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			panicking.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
			}

			var body map[string]any
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}

			if body["error"] != tt.wantMessage {
				t.Errorf("error = %v, want %q", body["error"], tt.wantMessage)
			}

			movies, hasMovies := body["movies"]
			_, hasTimestamp := body["timestamp"]

			if tt.wantList {
				if list, ok := movies.([]any); !ok || len(list) != 0 {
					t.Errorf("movies = %v, want an empty list", movies)
				}
				if body["total"] != float64(0) {
					t.Errorf("total = %v, want 0", body["total"])
				}
				if hasTimestamp {
					t.Error("list error body has a timestamp")
				}
				return
			}

			if hasMovies {
				t.Error("standard error body has movies")
			}
			if !hasTimestamp {
				t.Error("standard error body has no timestamp")
			}
		})
	}
}

func TestRateLimitOnMovieListKeepsListShape(t *testing.T) {
	h := RateLimit(1, time.Minute, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var w *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/movies?q=batman", nil)
		r.RemoteAddr = "203.0.113.9:1234"
		h.ServeHTTP(w, r)
	}

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}

	var got api.MovieListErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	want := api.MovieListErrorResponse{Error: ErrTooManyRequests, Movies: []api.Movie{}, Total: 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestNotFoundHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NotFoundHandler(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	resp := decodeError(t, w)
	if resp.Error != ErrNotFound {
		t.Errorf("error = %q, want %q", resp.Error, ErrNotFound)
	}
	if resp.Timestamp.IsZero() {
		t.Error("timestamp is zero")
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		disabled   bool
		wantStatus int
	}{
		{name: "third request is limited", wantStatus: http.StatusTooManyRequests},
		{name: "disabled limiter lets everything through", disabled: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RateLimit(2, time.Minute, tt.disabled)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			var w *httptest.ResponseRecorder
			for i := 0; i < 3; i++ {
				w = httptest.NewRecorder()
				r := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
				r.RemoteAddr = "203.0.113.7:1234"
				h.ServeHTTP(w, r)
			}

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://ui.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	r.Header.Set("Origin", "https://ui.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://ui.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}

func TestPrometheusMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/movies/{movieId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/movies/{movieId}", "404")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/movies/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/movies/43", nil))

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("requests recorded = %v, want 2", got)
	}
}
