package integration_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	matrixTrailerKey = "vKQi3bBA1y8"
	matrixTrailerURL = "https://www.youtube.com/watch?v=" + matrixTrailerKey
)

var fakeVideos = map[string]string{
	"603": `{"id":603,"results":[
		{"key":"feat1","name":"Making Of","site":"YouTube","type":"Featurette","official":true},
		{"key":"vimeo1","name":"Trailer","site":"Vimeo","type":"Trailer","official":true},
		{"key":"` + matrixTrailerKey + `","name":"Official Trailer","site":"YouTube","type":"Trailer","official":true}
	]}`,
	"550": `{"id":550,"results":[
		{"key":"teaser1","name":"Teaser","site":"YouTube","type":"Teaser","official":true}
	]}`,
}

var fakeSearch = map[string]string{
	"the matrix": `{"page":1,"results":[{"id":603,"title":"The Matrix"}]}`,
	"heat":       `{"page":1,"results":[{"id":949,"title":"Heat"}]}`,
}

var fakeDetails = map[string]string{
	"603": `{
		"id": 603,
		"title": "The Matrix",
		"original_title": "The Matrix",
		"release_date": "1999-03-30",
		"runtime": 136,
		"overview": "A hacker learns the truth about his reality.",
		"poster_path": "/matrix-poster.jpg",
		"backdrop_path": "/matrix-backdrop.jpg",
		"vote_average": 8.217,
		"vote_count": 26000,
		"popularity": 85.123,
		"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
		"credits": {"cast": [
			{"name": "Laurence Fishburne", "order": 1},
			{"name": "Keanu Reeves", "order": 0},
			{"name": "Carrie-Anne Moss", "order": 2}
		]},
		"videos": {"results": [
			{"key": "` + matrixTrailerKey + `", "name": "Official Trailer", "site": "YouTube", "type": "Trailer", "official": true}
		]},
		"release_dates": {"results": [
			{"iso_3166_1": "DE", "release_dates": [{"certification": "16", "type": 3}]},
			{"iso_3166_1": "US", "release_dates": [{"certification": "R", "type": 3}]}
		]}
	}`,
	"949": `{
		"id": 949,
		"title": "Heat",
		"original_title": "Heat",
		"release_date": "1995-12-15",
		"runtime": 170,
		"overview": "A thief and a detective cross paths.",
		"vote_average": 8.3,
		"vote_count": 7000,
		"popularity": 45.0,
		"genres": [{"id": 80, "name": "Crime"}],
		"credits": {"cast": []},
		"videos": {"results": []},
		"release_dates": {"results": []}
	}`,
}

// newFakeTMDB serves a fixed subset of the TMDB v3 API. Requests without the
// test API key are rejected the way TMDB does.
func newFakeTMDB() *httptest.Server {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("api_key") != tmdbAPIKey {
				writeFake(w, http.StatusUnauthorized, `{"status_code":7,"status_message":"Invalid API key"}`)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/movie/{id}/videos", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "500" {
			writeFake(w, http.StatusInternalServerError, `{"status_message":"boom"}`)
			return
		}
		serveFixture(w, fakeVideos, id)
	})

	r.Get("/movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		serveFixture(w, fakeDetails, chi.URLParam(r, "id"))
	})

	r.Get("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		body, ok := fakeSearch[strings.ToLower(r.URL.Query().Get("query"))]
		if !ok {
			body = `{"page":1,"results":[]}`
		}
		writeFake(w, http.StatusOK, body)
	})

	return httptest.NewServer(r)
}

func serveFixture(w http.ResponseWriter, fixtures map[string]string, key string) {
	body, ok := fixtures[key]
	if !ok {
		writeFake(w, http.StatusNotFound, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
		return
	}
	writeFake(w, http.StatusOK, body)
}

func writeFake(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
