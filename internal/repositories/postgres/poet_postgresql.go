package postgres

import (
	"context"

	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/repositories"
	"gorm.io/gorm"
)

type PoetPostgreSQL struct {
	db *gorm.DB
}

func NewPoetPostgreSQL(db *gorm.DB) repositories.PoetRepository {
	return &PoetPostgreSQL{db: db}
}

func (p *PoetPostgreSQL) List(ctx context.Context) ([]*models.Poet, error) {
	var poets []*models.Poet
	err := p.db.WithContext(ctx).
		Order("name ASC").
		Find(&poets).Error
	if err != nil {
		return nil, err
	}
	return poets, nil
}

func (p *PoetPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Poet, error) {
	var poet models.Poet
	if err := p.db.WithContext(ctx).First(&poet, id).Error; err != nil {
		return nil, err
	}
	return &poet, nil
}

func (p *PoetPostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Poet, error) {
	var poet models.Poet
	err := p.db.WithContext(ctx).
		Preload("Works").
		Preload("Media").
		First(&poet, id).Error
	if err != nil {
		return nil, err
	}
	return &poet, nil
}

func (p *PoetPostgreSQL) Search(ctx context.Context, query string, limit int) ([]*models.Poet, error) {
	var poets []*models.Poet
	err := p.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Limit(limit).
		Find(&poets).Error
	if err != nil {
		return nil, err
	}
	return poets, nil
}

type WorkPostgreSQL struct {
	db *gorm.DB
}

func NewWorkPostgreSQL(db *gorm.DB) repositories.WorkRepository {
	return &WorkPostgreSQL{db: db}
}

func (w *WorkPostgreSQL) List(ctx context.Context) ([]*models.Work, error) {
	var works []*models.Work
	err := w.db.WithContext(ctx).
		Preload("Poet").
		Find(&works).Error
	if err != nil {
		return nil, err
	}
	return works, nil
}

func (w *WorkPostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Work, error) {
	var work models.Work
	err := w.db.WithContext(ctx).
		Preload("Poet").
		Preload("Media").
		First(&work, id).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}
