package postgres

import (
	"context"
	"fmt"

	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (q *QuizPostgreSQL) GetByPoetID(ctx context.Context, poetID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := q.db.WithContext(ctx).
		Where("poet_id = ?", poetID).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// GetByPoetIDWithDetails loads the full question tree. Positions define the
// canonical order everywhere: question order in the quiz, option indexes for
// choice grading, and the ground-truth pairing for match grading.
func (q *QuizPostgreSQL) GetByPoetIDWithDetails(ctx context.Context, poetID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := q.db.WithContext(ctx).
		Where("poet_id = ?", poetID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Questions.MatchPairs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Questions.TextAnswer").
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	if err := q.db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// ReplaceQuestions implements the wholesale delete-and-recreate save. The
// delete and insert run inside one transaction so a failure mid-sequence
// cannot leave the quiz half-written.
func (q *QuizPostgreSQL) ReplaceQuestions(ctx context.Context, quizID uint, title string, questions []models.Question) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&models.Question{}).
			Where("quiz_id = ?", quizID).
			Pluck("id", &questionIDs).Error; err != nil {
			return fmt.Errorf("failed to collect question ids: %w", err)
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Option{}).Error; err != nil {
				return fmt.Errorf("failed to delete options: %w", err)
			}
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.MatchPair{}).Error; err != nil {
				return fmt.Errorf("failed to delete match pairs: %w", err)
			}
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.TextAnswer{}).Error; err != nil {
				return fmt.Errorf("failed to delete text answers: %w", err)
			}
			if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
				return fmt.Errorf("failed to delete questions: %w", err)
			}
		}

		for i := range questions {
			questions[i].ID = 0
			questions[i].QuizID = quizID
			questions[i].Position = i
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return fmt.Errorf("failed to insert questions: %w", err)
			}
		}

		if err := tx.Model(&models.Quiz{}).
			Where("id = ?", quizID).
			Update("title", title).Error; err != nil {
			return fmt.Errorf("failed to update quiz title: %w", err)
		}

		return nil
	})
}
