package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/eremean89/poetry/internal/models"
)

func TestQuizExportService_ExportQuiz(t *testing.T) {
	repo := NewMockRepository()
	svc := NewQuizExportService(repo, testLogger())

	quiz := &models.Quiz{
		ID:     10,
		Title:  "Лермонтов",
		PoetID: 5,
		Questions: []models.Question{
			*singleQuestion(1, 0),
			*textQuestion(2, "Москва"),
		},
	}
	repo.quiz.On("GetByPoetIDWithDetails", mock.Anything, uint(5)).Return(quiz, nil)

	data, err := svc.ExportQuiz(context.Background(), adminPrincipal(), 5)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	kind, err := f.GetCellValue("Questions", "B2")
	assert.NoError(t, err)
	assert.Equal(t, "single", kind)

	answer, err := f.GetCellValue("Questions", "E3")
	assert.NoError(t, err)
	assert.Equal(t, "Москва", answer)
}

func TestQuizExportService_Permissions(t *testing.T) {
	repo := NewMockRepository()
	svc := NewQuizExportService(repo, testLogger())

	_, err := svc.ExportQuiz(context.Background(), Principal{UserID: 2, Role: models.RoleUser}, 5)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ExportQuiz(context.Background(), Principal{}, 5)
	assert.ErrorIs(t, err, ErrUnauthorized)

	repo.quiz.On("GetByPoetIDWithDetails", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.ExportQuiz(context.Background(), adminPrincipal(), 9)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}
