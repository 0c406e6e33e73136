package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Movie struct {
	ID            int
	Title         string
	OriginalTitle *string
	TmdbID        *int
	ReleaseDate   *time.Time
	Runtime       *int
	Overview      *string
	PosterPath    *string
	BackdropPath  *string
	VoteAverage   decimal.NullDecimal
	VoteCount     *int
	Popularity    decimal.NullDecimal
	TrailerURL    *string
	Rating        *string
	Genres        []string
	Cast          []CastMember
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Enriched reports whether the movie has been matched to a TMDB entry.
func (m *Movie) Enriched() bool {
	return m.TmdbID != nil
}

type CastMember struct {
	ID       int
	Name     string
	Position int
}

type Genre struct {
	ID   int
	Name string
}

// CatalogQuery is the normalised form of a catalog search request. Every field is
// already defaulted and bounded, so repositories can use it as is.
type CatalogQuery struct {
	Term    string
	Genres  []string
	Ratings []string
	YearMin int
	YearMax int
	Limit   int
	Offset  int
}

type MovieRepository interface {
	GetAll(ctx context.Context, query CatalogQuery) ([]*Movie, int, error)
	GetByID(ctx context.Context, id int) (*Movie, error)
}

type GenreRepository interface {
	GetAll(ctx context.Context) ([]Genre, error)
}
