package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/metrics"
	"github.com/metinatakli/movie-catalog/internal/query"
)

const movieColumns = `m.id, m.title, m.original_title, m.tmdb_id, m.release_date, m.runtime,
	m.overview, m.poster_path, m.backdrop_path, m.vote_average, m.vote_count, m.popularity,
	m.trailer_url, m.rating, m.created_at, m.updated_at,
	COALESCE(mg_agg.names, '{}') AS genres`

const genresLateral = `LEFT JOIN LATERAL (
		SELECT array_agg(DISTINCT ge.name ORDER BY ge.name) AS names
		FROM movie_genres mgl
		JOIN genres ge ON ge.id = mgl.genre_id
		WHERE mgl.movie_id = m.id
	) mg_agg ON true`

// Enriched movies first, then the most popular and best rated. The id makes the
// order total so pages never overlap.
const catalogOrder = `(m.tmdb_id IS NULL) ASC,
	m.popularity DESC NULLS LAST,
	m.vote_average DESC NULLS LAST,
	m.title ASC,
	m.id ASC`

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

// GetAll returns one page of the catalog together with the number of movies
// matching the filters. Both queries run in one batch on the same connection.
func (p *PostgresMovieRepository) GetAll(ctx context.Context, q domain.CatalogQuery) (movies []*domain.Movie, total int, err error) {
	defer func(start time.Time) {
		metrics.RecordDBQuery("movies_get_all", start, err)
	}(time.Now())

	where, args := query.NewWhereBuilder().
		AddTextSearch(q.Term).
		AddGenres(q.Genres).
		AddRatings(q.Ratings).
		AddYearRange(q.YearMin, q.YearMax).
		Build()

	countQuery := query.Rebind(fmt.Sprintf(`SELECT count(DISTINCT m.id) FROM movies m WHERE %s`, where))

	pageQuery := query.Rebind(fmt.Sprintf(`SELECT %s
		FROM movies m
		%s
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`, movieColumns, genresLateral, where, catalogOrder))

	pageArgs := make([]any, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, q.Limit, q.Offset)

	batch := &pgx.Batch{}
	batch.Queue(countQuery, args...)
	batch.Queue(pageQuery, pageArgs...)

	results := p.db.SendBatch(ctx, batch)
	defer results.Close()

	err = results.QueryRow().Scan(&total)
	if err != nil {
		return nil, 0, translateError(err)
	}

	rows, err := results.Query()
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	movies = []*domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, 0, translateError(err)
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, translateError(err)
	}

	metrics.CatalogPageSize.Observe(float64(len(movies)))

	return movies, total, nil
}

// GetByID returns a single movie with its genres and billed cast.
func (p *PostgresMovieRepository) GetByID(ctx context.Context, id int) (movie *domain.Movie, err error) {
	defer func(start time.Time) {
		metrics.RecordDBQuery("movies_get_by_id", start, err)
	}(time.Now())

	movieQuery := fmt.Sprintf(`SELECT %s
		FROM movies m
		%s
		WHERE m.id = $1`, movieColumns, genresLateral)

	castQuery := `SELECT c.id, c.name, mc.position
		FROM movie_cast mc
		JOIN cast_members c ON c.id = mc.cast_id
		WHERE mc.movie_id = $1
		ORDER BY mc.position, c.name`

	batch := &pgx.Batch{}
	batch.Queue(movieQuery, id)
	batch.Queue(castQuery, id)

	results := p.db.SendBatch(ctx, batch)
	defer results.Close()

	movie, err = scanMovie(results.QueryRow())
	if err != nil {
		return nil, translateError(err)
	}

	rows, err := results.Query()
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	movie.Cast = []domain.CastMember{}

	for rows.Next() {
		var member domain.CastMember

		err := rows.Scan(&member.ID, &member.Name, &member.Position)
		if err != nil {
			return nil, translateError(err)
		}

		movie.Cast = append(movie.Cast, member)
	}

	if err = rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return movie, nil
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var movie domain.Movie

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.OriginalTitle,
		&movie.TmdbID,
		&movie.ReleaseDate,
		&movie.Runtime,
		&movie.Overview,
		&movie.PosterPath,
		&movie.BackdropPath,
		&movie.VoteAverage,
		&movie.VoteCount,
		&movie.Popularity,
		&movie.TrailerURL,
		&movie.Rating,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.Genres,
	)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}
