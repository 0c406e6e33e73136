package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/metrics"
)

type PostgresGenreRepository struct {
	db *pgxpool.Pool
}

func NewPostgresGenreRepository(db *pgxpool.Pool) *PostgresGenreRepository {
	return &PostgresGenreRepository{
		db: db,
	}
}

func (p *PostgresGenreRepository) GetAll(ctx context.Context) (genres []domain.Genre, err error) {
	defer func(start time.Time) {
		metrics.RecordDBQuery("genres_get_all", start, err)
	}(time.Now())

	rows, err := p.db.Query(ctx, `SELECT id, name FROM genres ORDER BY name COLLATE "C"`)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	genres = []domain.Genre{}

	for rows.Next() {
		var genre domain.Genre

		err := rows.Scan(&genre.ID, &genre.Name)
		if err != nil {
			return nil, translateError(err)
		}

		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return genres, nil
}
