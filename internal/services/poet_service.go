package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/repositories"
)

// searchLimit caps search-as-you-type results.
const searchLimit = 4

// PoetService serves the content side of the site: poets, their works and
// attached media. Read only.
type PoetService interface {
	List(ctx context.Context) ([]*models.Poet, error)
	Get(ctx context.Context, id uint) (*PoetDetailResponse, error)
	Search(ctx context.Context, query string) ([]*models.Poet, error)
	ListWorks(ctx context.Context) ([]*models.Work, error)
	GetWork(ctx context.Context, id uint) (*models.Work, error)
}

// PoetDetailResponse carries the poet with media split by type, the shape
// the poet page renders directly.
type PoetDetailResponse struct {
	Poet   *models.Poet   `json:"poet"`
	Audios []models.Media `json:"audios"`
	Videos []models.Media `json:"videos"`
}

type poetService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewPoetService(repo repositories.Repository, logger *slog.Logger) PoetService {
	return &poetService{repo: repo, logger: logger}
}

func (s *poetService) List(ctx context.Context) ([]*models.Poet, error) {
	poets, err := s.repo.Poet().List(ctx)
	if err != nil {
		return nil, NewPersistenceError("poet list", err)
	}
	return poets, nil
}

func (s *poetService) Get(ctx context.Context, id uint) (*PoetDetailResponse, error) {
	poet, err := s.repo.Poet().GetByIDWithDetails(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPoetNotFound
		}
		return nil, NewPersistenceError("poet load", err)
	}

	resp := &PoetDetailResponse{
		Poet:   poet,
		Audios: make([]models.Media, 0),
		Videos: make([]models.Media, 0),
	}
	for _, m := range poet.Media {
		switch m.Type {
		case models.MediaAudio:
			resp.Audios = append(resp.Audios, m)
		case models.MediaVideo:
			resp.Videos = append(resp.Videos, m)
		}
	}
	return resp, nil
}

func (s *poetService) Search(ctx context.Context, query string) ([]*models.Poet, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Poet{}, nil
	}

	poets, err := s.repo.Poet().Search(ctx, query, searchLimit)
	if err != nil {
		return nil, NewPersistenceError("poet search", err)
	}
	return poets, nil
}

func (s *poetService) ListWorks(ctx context.Context) ([]*models.Work, error) {
	works, err := s.repo.Work().List(ctx)
	if err != nil {
		return nil, NewPersistenceError("work list", err)
	}
	return works, nil
}

func (s *poetService) GetWork(ctx context.Context, id uint) (*models.Work, error) {
	work, err := s.repo.Work().GetByIDWithDetails(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrWorkNotFound
		}
		return nil, NewPersistenceError("work load", err)
	}
	return work, nil
}
