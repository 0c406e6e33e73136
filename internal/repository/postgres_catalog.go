package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/metrics"
)

// PostgresCatalogRepository is the write side of the catalog, used by the import,
// enrichment and maintenance jobs.
type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

// Upsert stores one import record in its own transaction. Records carrying a TMDB
// id are inserted or updated on that id. Records without one are inserted unless
// a movie with the same title already exists.
func (p *PostgresCatalogRepository) Upsert(ctx context.Context, record domain.MovieRecord) (outcome domain.ImportOutcome, err error) {
	defer func(start time.Time) {
		metrics.RecordDBQuery("catalog_upsert", start, err)
	}(time.Now())

	releaseDate, err := record.ParsedReleaseDate()
	if err != nil {
		return domain.OutcomeSkipped, errors.Join(domain.ErrInvalidRecord, err)
	}

	err = runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var movieID int

		if record.TmdbID == nil {
			query := `SELECT id FROM movies WHERE lower(title) = lower($1) ORDER BY id LIMIT 1`

			err := tx.QueryRow(ctx, query, record.Title).Scan(&movieID)
			if err == nil {
				outcome = domain.OutcomeSkipped
				return nil
			}
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
		}

		query := `
			INSERT INTO movies (title, original_title, tmdb_id, release_date, runtime, overview,
				poster_path, backdrop_path, vote_average, vote_count, popularity, trailer_url, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (tmdb_id) DO UPDATE SET
				title = EXCLUDED.title,
				original_title = EXCLUDED.original_title,
				release_date = EXCLUDED.release_date,
				runtime = EXCLUDED.runtime,
				overview = EXCLUDED.overview,
				poster_path = EXCLUDED.poster_path,
				backdrop_path = EXCLUDED.backdrop_path,
				vote_average = EXCLUDED.vote_average,
				vote_count = EXCLUDED.vote_count,
				popularity = EXCLUDED.popularity,
				trailer_url = EXCLUDED.trailer_url,
				rating = EXCLUDED.rating
			RETURNING id, (xmax = 0) AS inserted`

		var inserted bool

		err := tx.QueryRow(
			ctx,
			query,
			record.Title,
			record.OriginalTitle,
			record.TmdbID,
			releaseDate,
			record.Runtime,
			record.Overview,
			record.PosterPath,
			record.BackdropPath,
			record.VoteAverage,
			record.VoteCount,
			record.Popularity,
			record.TrailerURL,
			record.Rating).Scan(&movieID, &inserted)

		if err != nil {
			return err
		}

		outcome = domain.OutcomeUpdated
		if inserted {
			outcome = domain.OutcomeInserted
		}

		err = replaceGenres(ctx, tx, movieID, record.Genres)
		if err != nil {
			return err
		}

		return replaceCast(ctx, tx, movieID, record.Cast)
	})

	if err != nil {
		return domain.OutcomeSkipped, translateError(err)
	}

	return outcome, nil
}

// ListUnenriched returns movies without a TMDB id in id order. A limit of zero or
// less returns all of them.
func (p *PostgresCatalogRepository) ListUnenriched(ctx context.Context, limit int) (movies []*domain.Movie, err error) {
	defer func(start time.Time) {
		metrics.RecordDBQuery("catalog_list_unenriched", start, err)
	}(time.Now())

	var limitArg *int
	if limit > 0 {
		limitArg = &limit
	}

	rows, err := p.db.Query(ctx, `SELECT id, title FROM movies WHERE tmdb_id IS NULL ORDER BY id LIMIT $1`, limitArg)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	movies = []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(&movie.ID, &movie.Title)
		if err != nil {
			return nil, translateError(err)
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return movies, nil
}

// ApplyEnrichment writes provider metadata onto an existing movie and replaces its
// genre and cast links.
func (p *PostgresCatalogRepository) ApplyEnrichment(ctx context.Context, movieID int, e domain.Enrichment) (err error) {
	defer func(start time.Time) {
		metrics.RecordDBQuery("catalog_apply_enrichment", start, err)
	}(time.Now())

	err = runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE movies SET
				tmdb_id = $2,
				original_title = $3,
				release_date = $4,
				runtime = $5,
				overview = $6,
				poster_path = $7,
				backdrop_path = $8,
				vote_average = $9,
				vote_count = $10,
				popularity = $11,
				trailer_url = $12,
				rating = $13
			WHERE id = $1`

		tag, err := tx.Exec(
			ctx,
			query,
			movieID,
			e.TmdbID,
			e.OriginalTitle,
			e.ReleaseDate,
			e.Runtime,
			e.Overview,
			e.PosterPath,
			e.BackdropPath,
			e.VoteAverage,
			e.VoteCount,
			e.Popularity,
			e.TrailerURL,
			e.Rating)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		err = replaceGenres(ctx, tx, movieID, e.Genres)
		if err != nil {
			return err
		}

		return replaceCast(ctx, tx, movieID, e.Cast)
	})

	return translateError(err)
}

func (p *PostgresCatalogRepository) ListTitles(ctx context.Context) (entries []domain.TitleEntry, err error) {
	defer func(start time.Time) {
		metrics.RecordDBQuery("catalog_list_titles", start, err)
	}(time.Now())

	rows, err := p.db.Query(ctx, `SELECT id, title, tmdb_id IS NOT NULL FROM movies ORDER BY id`)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	entries = []domain.TitleEntry{}

	for rows.Next() {
		var entry domain.TitleEntry

		err := rows.Scan(&entry.ID, &entry.Title, &entry.Enriched)
		if err != nil {
			return nil, translateError(err)
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return entries, nil
}

// DeleteMovies removes the movies with the given ids and returns how many rows went
// away. Genre and cast links are removed by cascade.
func (p *PostgresCatalogRepository) DeleteMovies(ctx context.Context, ids []int) (deleted int, err error) {
	if len(ids) == 0 {
		return 0, nil
	}

	defer func(start time.Time) {
		metrics.RecordDBQuery("catalog_delete_movies", start, err)
	}(time.Now())

	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, translateError(err)
	}

	return int(tag.RowsAffected()), nil
}

func (p *PostgresCatalogRepository) Stats(ctx context.Context) (stats domain.CatalogStats, err error) {
	defer func(start time.Time) {
		metrics.RecordDBQuery("catalog_stats", start, err)
	}(time.Now())

	query := `SELECT count(*), count(tmdb_id), count(*) FILTER (WHERE tmdb_id IS NULL) FROM movies`

	err = p.db.QueryRow(ctx, query).Scan(&stats.Total, &stats.Enriched, &stats.Unenriched)
	if err != nil {
		return domain.CatalogStats{}, translateError(err)
	}

	return stats, nil
}

// replaceGenres links the movie to the named genres. Names that are not in the
// genres table are ignored.
func replaceGenres(ctx context.Context, tx pgx.Tx, movieID int, genres []string) error {
	_, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID)
	if err != nil {
		return err
	}

	if len(genres) == 0 {
		return nil
	}

	query := `
		INSERT INTO movie_genres (movie_id, genre_id)
		SELECT $1, id FROM genres WHERE name = ANY($2)
		ON CONFLICT DO NOTHING`

	_, err = tx.Exec(ctx, query, movieID, genres)
	return err
}

// replaceCast upserts the cast members by name and links them in billing order.
func replaceCast(ctx context.Context, tx pgx.Tx, movieID int, cast []string) error {
	_, err := tx.Exec(ctx, `DELETE FROM movie_cast WHERE movie_id = $1`, movieID)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(cast))
	rows := make([][]any, 0, len(cast))

	for _, name := range cast {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var castID int

		query := `
			INSERT INTO cast_members (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`

		err := tx.QueryRow(ctx, query, name).Scan(&castID)
		if err != nil {
			return err
		}

		rows = append(rows, []any{movieID, castID, len(rows)})
	}

	if len(rows) == 0 {
		return nil
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"movie_cast"},
		[]string{"movie_id", "cast_id", "position"},
		pgx.CopyFromRows(rows),
	)

	return err
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
