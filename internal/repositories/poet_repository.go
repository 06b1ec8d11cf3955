package repositories

import (
	"context"

	"github.com/eremean89/poetry/internal/models"
)

type PoetRepository interface {
	List(ctx context.Context) ([]*models.Poet, error)
	GetByID(ctx context.Context, id uint) (*models.Poet, error)
	// GetByIDWithDetails loads the poet together with works and media.
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Poet, error)
	// Search matches poet names case-insensitively by substring, capped at
	// limit rows. Used by the search-as-you-type endpoint.
	Search(ctx context.Context, query string, limit int) ([]*models.Poet, error)
}

type WorkRepository interface {
	List(ctx context.Context) ([]*models.Work, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Work, error)
}
