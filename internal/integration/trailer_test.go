package integration_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/metinatakli/movie-catalog/internal/app"
	"github.com/metinatakli/movie-catalog/internal/tmdb"
	"github.com/stretchr/testify/suite"
)

type TrailerSuite struct {
	BaseSuite
}

func TestTrailerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	suite.Run(t, new(TrailerSuite))
}

func (s *TrailerSuite) TestGetTrailer() {
	scenarios := []Scenario{
		{
			Name:             "first youtube trailer is selected",
			Method:           http.MethodGet,
			URL:              "/api/trailer?tmdbId=603",
			ExpectedStatus:   http.StatusOK,
			ExpectedResponse: fmt.Sprintf(`{"found": true, "trailerUrl": %q}`, matrixTrailerURL),
		},
		{
			Name:             "movie without a trailer",
			Method:           http.MethodGet,
			URL:              "/api/trailer?tmdbId=550",
			ExpectedStatus:   http.StatusOK,
			ExpectedResponse: `{"found": false, "trailerUrl": null}`,
		},
		{
			Name:             "movie unknown to the provider",
			Method:           http.MethodGet,
			URL:              "/api/trailer?tmdbId=424242",
			ExpectedStatus:   http.StatusOK,
			ExpectedResponse: `{"found": false, "trailerUrl": null}`,
		},
		{
			Name:             "provider failure",
			Method:           http.MethodGet,
			URL:              "/api/trailer?tmdbId=500",
			ExpectedStatus:   http.StatusInternalServerError,
			ExpectedResponse: fmt.Sprintf(`{"error": %q}`, app.ErrTrailerUnavailable),
		},
		{
			Name:             "missing id",
			Method:           http.MethodGet,
			URL:              "/api/trailer",
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"error": "tmdbId is required"}`,
		},
		{
			Name:             "malformed id",
			Method:           http.MethodGet,
			URL:              "/api/trailer?tmdbId=abc",
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"error": "tmdbId must be a positive integer"}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *TrailerSuite) TestGetTrailerWithoutAPIKey() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := tmdb.NewClient(tmdb.Config{BaseURL: s.tmdbServer.URL}, logger)

	unconfigured := &TestApp{
		App:    newApplication(s.app.Config, logger, s.app.DB, client),
		DB:     s.app.DB,
		Config: s.app.Config,
	}

	Scenario{
		Name:             "missing api key",
		Method:           http.MethodGet,
		URL:              "/api/trailer?tmdbId=603",
		ExpectedStatus:   http.StatusInternalServerError,
		ExpectedResponse: fmt.Sprintf(`{"error": %q}`, app.ErrTrailerNotSetUp),
	}.Run(s.T(), unconfigured)
}
