package tmdb

import (
	"sort"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	certificationCountry = "US"
	theatricalRelease    = 3
)

type videoResult struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type videosResponse struct {
	Results []videoResult `json:"results"`
}

func (r videosResponse) toVideos() []domain.Video {
	videos := make([]domain.Video, len(r.Results))

	for i, v := range r.Results {
		videos[i] = domain.Video{
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		}
	}

	return videos
}

type searchResponse struct {
	Results []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	} `json:"results"`
}

type castCredit struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type releaseDate struct {
	Certification string `json:"certification"`
	Type          int    `json:"type"`
}

type countryReleases struct {
	Country      string        `json:"iso_3166_1"`
	ReleaseDates []releaseDate `json:"release_dates"`
}

type detailsResponse struct {
	ID            int                 `json:"id"`
	Title         string              `json:"title"`
	OriginalTitle string              `json:"original_title"`
	ReleaseDate   string              `json:"release_date"`
	Runtime       *int                `json:"runtime"`
	Overview      string              `json:"overview"`
	PosterPath    *string             `json:"poster_path"`
	BackdropPath  *string             `json:"backdrop_path"`
	VoteAverage   decimal.NullDecimal `json:"vote_average"`
	VoteCount     int                 `json:"vote_count"`
	Popularity    decimal.NullDecimal `json:"popularity"`
	Genres        []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []castCredit `json:"cast"`
	} `json:"credits"`
	Videos       videosResponse `json:"videos"`
	ReleaseDates struct {
		Results []countryReleases `json:"results"`
	} `json:"release_dates"`
}

func (r detailsResponse) toDetails() *domain.MovieDetails {
	details := &domain.MovieDetails{
		TmdbID:        r.ID,
		Title:         r.Title,
		OriginalTitle: r.OriginalTitle,
		Runtime:       r.Runtime,
		Overview:      r.Overview,
		VoteAverage:   roundDecimal(r.VoteAverage, 1),
		VoteCount:     r.VoteCount,
		Popularity:    roundDecimal(r.Popularity, 2),
		Videos:        r.Videos.toVideos(),
		Certification: usCertification(r.ReleaseDates.Results),
	}

	if r.PosterPath != nil {
		details.PosterPath = *r.PosterPath
	}
	if r.BackdropPath != nil {
		details.BackdropPath = *r.BackdropPath
	}

	if t, err := time.Parse(time.DateOnly, r.ReleaseDate); err == nil {
		details.ReleaseDate = &t
	}

	details.Genres = make([]string, 0, len(r.Genres))
	for _, g := range r.Genres {
		details.Genres = append(details.Genres, g.Name)
	}

	cast := append([]castCredit(nil), r.Credits.Cast...)
	sort.SliceStable(cast, func(i, j int) bool {
		return cast[i].Order < cast[j].Order
	})

	details.Cast = make([]string, 0, len(cast))
	for _, c := range cast {
		details.Cast = append(details.Cast, c.Name)
	}

	return details
}

// usCertification returns the certification of the first US theatrical release
// that has one.
func usCertification(countries []countryReleases) string {
	for _, country := range countries {
		if country.Country != certificationCountry {
			continue
		}

		for _, release := range country.ReleaseDates {
			if release.Type == theatricalRelease && release.Certification != "" {
				return release.Certification
			}
		}
	}

	return ""
}

func roundDecimal(d decimal.NullDecimal, places int32) decimal.NullDecimal {
	if !d.Valid {
		return d
	}

	return decimal.NewNullDecimal(d.Decimal.Round(places))
}
