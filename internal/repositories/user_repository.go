package repositories

import (
	"context"

	"github.com/eremean89/poetry/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
