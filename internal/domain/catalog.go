package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MaxCastMembers is the number of billed cast members kept per movie.
const MaxCastMembers = 5

// MovieRecord is one entry of an import file.
type MovieRecord struct {
	Title         string              `json:"title" validate:"required,max=255"`
	OriginalTitle *string             `json:"original_title" validate:"omitempty,max=255"`
	TmdbID        *int                `json:"tmdb_id" validate:"omitempty,gt=0"`
	ReleaseDate   string              `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	Runtime       *int                `json:"runtime" validate:"omitempty,gte=0"`
	Overview      *string             `json:"overview"`
	PosterPath    *string             `json:"poster_path" validate:"omitempty,max=500"`
	BackdropPath  *string             `json:"backdrop_path" validate:"omitempty,max=500"`
	VoteAverage   decimal.NullDecimal `json:"vote_average" validate:"omitempty,gte=0,lte=10"`
	VoteCount     *int                `json:"vote_count" validate:"omitempty,gte=0"`
	Popularity    decimal.NullDecimal `json:"popularity" validate:"omitempty,gte=0"`
	TrailerURL    *string             `json:"trailer_url" validate:"omitempty,max=500,url"`
	Rating        *string             `json:"rating" validate:"omitempty,certification"`
	Genres        []string            `json:"genres" validate:"dive,required,max=100"`
	Cast          []string            `json:"cast" validate:"dive,required,max=255"`
}

// ParsedReleaseDate returns the record's release date, or nil when it is empty.
func (r MovieRecord) ParsedReleaseDate() (*time.Time, error) {
	if r.ReleaseDate == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, r.ReleaseDate)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

type ImportOutcome int

const (
	OutcomeInserted ImportOutcome = iota
	OutcomeUpdated
	OutcomeSkipped
)

func (o ImportOutcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// MovieMatch is the best search hit a metadata provider returned for a title.
type MovieMatch struct {
	TmdbID int
	Title  string
}

// MovieDetails is the full provider view of a movie, including credits, videos
// and release certifications.
type MovieDetails struct {
	TmdbID        int
	Title         string
	OriginalTitle string
	ReleaseDate   *time.Time
	Runtime       *int
	Overview      string
	PosterPath    string
	BackdropPath  string
	VoteAverage   decimal.NullDecimal
	VoteCount     int
	Popularity    decimal.NullDecimal
	Genres        []string
	Cast          []string
	Videos        []Video
	Certification string
}

type MetadataProvider interface {
	SearchMovie(ctx context.Context, title string) (*MovieMatch, error)
	MovieDetails(ctx context.Context, tmdbID int) (*MovieDetails, error)
}

// Enrichment holds the columns written onto an existing movie once it is matched.
type Enrichment struct {
	TmdbID        int
	OriginalTitle *string
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
	Cast          []string
}

func NewEnrichment(d MovieDetails) Enrichment {
	e := Enrichment{
		TmdbID:        d.TmdbID,
		OriginalTitle: nonEmpty(d.OriginalTitle),
		ReleaseDate:   d.ReleaseDate,
		Runtime:       d.Runtime,
		Overview:      nonEmpty(d.Overview),
		PosterPath:    nonEmpty(d.PosterPath),
		BackdropPath:  nonEmpty(d.BackdropPath),
		VoteAverage:   d.VoteAverage,
		VoteCount:     &d.VoteCount,
		Popularity:    d.Popularity,
		Rating:        nonEmpty(d.Certification),
		Genres:        d.Genres,
		Cast:          d.Cast,
	}

	if url, ok := SelectTrailer(d.Videos); ok {
		e.TrailerURL = &url
	}

	if len(e.Cast) > MaxCastMembers {
		e.Cast = e.Cast[:MaxCastMembers]
	}

	return e
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// TitleEntry is the minimal view of a movie used by catalog maintenance.
type TitleEntry struct {
	ID       int
	Title    string
	Enriched bool
}

type CatalogStats struct {
	Total      int
	Enriched   int
	Unenriched int
}

// EnrichmentRate is the enriched share of the catalog as a percentage.
func (s CatalogStats) EnrichmentRate() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Enriched) / float64(s.Total) * 100
}

// CatalogRepository is the write side of the catalog used by the offline jobs.
type CatalogRepository interface {
	Upsert(ctx context.Context, record MovieRecord) (ImportOutcome, error)
	ListUnenriched(ctx context.Context, limit int) ([]*Movie, error)
	ApplyEnrichment(ctx context.Context, movieID int, e Enrichment) error
	ListTitles(ctx context.Context) ([]TitleEntry, error)
	DeleteMovies(ctx context.Context, ids []int) (int, error)
	Stats(ctx context.Context) (CatalogStats, error)
}
