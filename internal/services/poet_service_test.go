package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/eremean89/poetry/internal/models"
)

func TestPoetService_Get(t *testing.T) {
	repo := NewMockRepository()
	svc := NewPoetService(repo, testLogger())

	poetID := uint(1)
	workID := uint(3)
	poet := &models.Poet{
		ID:   1,
		Name: "Лермонтов",
		Media: []models.Media{
			{ID: 1, Title: "Reading", Type: models.MediaAudio, PoetID: &poetID},
			{ID: 2, Title: "Documentary", Type: models.MediaVideo, PoetID: &poetID},
			{ID: 3, Title: "Another reading", Type: models.MediaAudio, WorkID: &workID},
		},
	}
	repo.poet.On("GetByIDWithDetails", mock.Anything, uint(1)).Return(poet, nil)

	detail, err := svc.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, detail.Audios, 2)
	assert.Len(t, detail.Videos, 1)

	repo.poet.On("GetByIDWithDetails", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrPoetNotFound)
}

func TestPoetService_Search(t *testing.T) {
	repo := NewMockRepository()
	svc := NewPoetService(repo, testLogger())

	found := []*models.Poet{{ID: 1, Name: "Лермонтов"}}
	repo.poet.On("Search", mock.Anything, "Лерм", searchLimit).Return(found, nil)

	poets, err := svc.Search(context.Background(), "  Лерм  ")
	assert.NoError(t, err)
	assert.Len(t, poets, 1)

	// blank queries short-circuit without touching the store
	poets, err = svc.Search(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Empty(t, poets)
	repo.poet.AssertNumberOfCalls(t, "Search", 1)
}

func TestPoetService_GetWork(t *testing.T) {
	repo := NewMockRepository()
	svc := NewPoetService(repo, testLogger())

	repo.work.On("GetByIDWithDetails", mock.Anything, uint(2)).Return(&models.Work{ID: 2, Title: "Парус"}, nil)

	work, err := svc.GetWork(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, "Парус", work.Title)

	repo.work.On("GetByIDWithDetails", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.GetWork(context.Background(), 9)
	assert.ErrorIs(t, err, ErrWorkNotFound)
}
