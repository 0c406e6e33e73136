package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/config"
	"github.com/metinatakli/movie-catalog/internal/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		Catalog: config.CatalogConfig{
			DefaultLimit:   1000,
			MaxLimit:       1000,
			DefaultYearMin: 1900,
			DefaultYearMax: 2024,
		},
		CORS: config.CORSConfig{Origins: []string{"*"}},
		RateLimit: config.RateLimit{
			Requests: 100,
			Window:   time.Minute,
			Disabled: true,
		},
	}
}

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:        testConfig(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		movieRepo:     &mocks.MockMovieRepo{},
		genreRepo:     &mocks.MockGenreRepo{},
		videoProvider: &mocks.MockVideoProvider{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	r := httptest.NewRequest(method, url, nil)
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	t.Helper()

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if tt.wantErrMessage != "" && errorResp.Error != tt.wantErrMessage {
		t.Errorf("Error message = %v, want %v", errorResp.Error, tt.wantErrMessage)
	}
}

func ptr[T any](v T) *T {
	return &v
}
