package repositories

import (
	"context"

	"github.com/eremean89/poetry/internal/models"
)

// QuizRepository covers quiz storage. A poet has at most one quiz in the
// current design; lookups are by poet id, first match.
type QuizRepository interface {
	GetByPoetID(ctx context.Context, poetID uint) (*models.Quiz, error)
	// GetByPoetIDWithDetails loads the quiz with questions and each
	// question's options, match pairs and text answer, all in stored order.
	GetByPoetIDWithDetails(ctx context.Context, poetID uint) (*models.Quiz, error)

	Create(ctx context.Context, quiz *models.Quiz) error
	// ReplaceQuestions deletes every question (with its options, pairs and
	// text answer) under the quiz and inserts the given set, atomically.
	ReplaceQuestions(ctx context.Context, quizID uint, title string, questions []models.Question) error
}

// ResultRepository persists compact grading-history rows. Results are
// append-only: repeated attempts accumulate, nothing is upserted.
type ResultRepository interface {
	Create(ctx context.Context, result *models.QuizResult) error
	GetByUser(ctx context.Context, userID uint, filters ResultFilters) ([]*models.QuizResult, int64, error)
}
