package postgres

import (
	"context"
	"fmt"

	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r *ResultPostgreSQL) Create(ctx context.Context, result *models.QuizResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}
	return nil
}

func (r *ResultPostgreSQL) GetByUser(ctx context.Context, userID uint, filters repositories.ResultFilters) ([]*models.QuizResult, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.QuizResult{}).
		Where("user_id = ?", userID)

	if filters.QuizID != nil {
		query = query.Where("quiz_id = ?", *filters.QuizID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var results []*models.QuizResult
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}
