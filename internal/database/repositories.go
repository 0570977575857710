package database

import (
	"context"

	"github.com/moviehub/movies-api/internal/models"
)

// MovieRepositoryInterface defines the movie repository operations.
// It exists so handlers can be tested against mock implementations.
type MovieRepositoryInterface interface {
	Create(ctx context.Context, movie *models.Movie) error
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	GetAll(ctx context.Context) ([]*models.Movie, error)
	GetByCategory(ctx context.Context, category models.Category) ([]*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id int64) error
}

var _ MovieRepositoryInterface = (*MovieRepository)(nil)
