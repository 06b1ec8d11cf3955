package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/repositories"
)

// QuizExportService renders a poet's quiz as an Excel workbook for offline
// review by editors.
type QuizExportService interface {
	ExportQuiz(ctx context.Context, principal Principal, poetID uint) ([]byte, error)
}

type quizExportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewQuizExportService(repo repositories.Repository, logger *slog.Logger) QuizExportService {
	return &quizExportService{repo: repo, logger: logger}
}

func (s *quizExportService) ExportQuiz(ctx context.Context, principal Principal, poetID uint) ([]byte, error) {
	if principal.IsZero() {
		return nil, ErrUnauthorized
	}
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	quiz, err := s.repo.Quiz().GetByPoetIDWithDetails(ctx, poetID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, NewPersistenceError("quiz load", err)
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"#", "Type", "Question", "Options", "Correct Answer"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex := range quiz.Questions {
		q := &quiz.Questions[rowIndex]
		row := []interface{}{
			rowIndex + 1,
			q.Kind.WireKind(),
			q.Prompt,
			optionsCell(q),
			correctAnswerCell(q),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported quiz", "quiz_id", quiz.ID, "poet_id", poetID, "question_count", len(quiz.Questions))
	return buf.Bytes(), nil
}

func optionsCell(q *models.Question) string {
	switch q.Kind {
	case models.KindSingle, models.KindMultiple:
		texts := make([]string, 0, len(q.Options))
		for i, opt := range q.Options {
			texts = append(texts, fmt.Sprintf("%d. %s", i+1, opt.Text))
		}
		return strings.Join(texts, "\n")
	case models.KindMatch:
		rows := make([]string, 0, len(q.MatchPairs))
		for _, p := range q.MatchPairs {
			rows = append(rows, fmt.Sprintf("%s = %s", p.Left, p.Right))
		}
		return strings.Join(rows, "\n")
	}
	return ""
}

func correctAnswerCell(q *models.Question) string {
	switch q.Kind {
	case models.KindSingle, models.KindMultiple:
		idxs := q.CorrectIndexes()
		labels := make([]string, 0, len(idxs))
		for _, idx := range idxs {
			labels = append(labels, strconv.Itoa(idx+1))
		}
		return strings.Join(labels, ", ")
	case models.KindText:
		if q.TextAnswer != nil {
			return q.TextAnswer.Answer
		}
	case models.KindMatch:
		return "pairs as listed"
	}
	return ""
}
