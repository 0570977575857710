package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/moviehub/movies-api/internal/models"
)

// ErrMovieNotFound is returned when no movie matches the given ID.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepository handles movie database operations.
type MovieRepository struct {
	db *DB
}

// NewMovieRepository creates a new movie repository.
func NewMovieRepository(db *DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts a new movie record.
func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	query := `
		INSERT INTO movies (id, title, overview, year, rating, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		movie.ID,
		movie.Title,
		movie.Overview,
		movie.Year,
		movie.Rating,
		movie.Category,
		now,
		now,
	).Scan(&movie.CreatedAt, &movie.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

// GetByID retrieves a movie by ID.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	movie := &models.Movie{}

	query := `
		SELECT id, title, overview, year, rating, category, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Overview,
		&movie.Year,
		&movie.Rating,
		&movie.Category,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrMovieNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

// GetAll retrieves every movie, newest first.
func (r *MovieRepository) GetAll(ctx context.Context) ([]*models.Movie, error) {
	query := `
		SELECT id, title, overview, year, rating, category, created_at, updated_at
		FROM movies
		ORDER BY created_at DESC
	`
	return r.queryMovies(ctx, query)
}

// GetByCategory retrieves all movies with the given category, newest first.
func (r *MovieRepository) GetByCategory(ctx context.Context, category models.Category) ([]*models.Movie, error) {
	query := `
		SELECT id, title, overview, year, rating, category, created_at, updated_at
		FROM movies
		WHERE category = $1
		ORDER BY created_at DESC
	`
	return r.queryMovies(ctx, query, string(category))
}

func (r *MovieRepository) queryMovies(ctx context.Context, query string, args ...any) ([]*models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []*models.Movie
	for rows.Next() {
		movie := &models.Movie{}
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Overview,
			&movie.Year,
			&movie.Rating,
			&movie.Category,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}

	return movies, nil
}

// Update replaces the mutable fields of the movie with the given ID.
func (r *MovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, overview = $3, year = $4, rating = $5, category = $6, updated_at = $7
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		movie.ID,
		movie.Title,
		movie.Overview,
		movie.Year,
		movie.Rating,
		movie.Category,
		time.Now(),
	).Scan(&movie.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id %d", ErrMovieNotFound, movie.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

// Delete removes the movie with the given ID.
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrMovieNotFound, id)
	}

	return nil
}
