package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eremean89/poetry/internal/events"
	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/repositories"
	"github.com/eremean89/poetry/internal/utils"
)

// QuizAuthoringService is the editor-facing quiz surface. Loads return the
// editable draft shape; saves validate completeness and then replace the
// quiz's whole question set in one transaction.
type QuizAuthoringService interface {
	GetForAuthoring(ctx context.Context, principal Principal, poetID uint) (*AuthoringQuizResponse, error)
	Save(ctx context.Context, principal Principal, poetID uint, req *SaveQuizRequest) (*AuthoringQuizResponse, error)
}

type SaveQuizRequest struct {
	// Title is optional; an empty title keeps the quiz's current one (the
	// poet's name on first save).
	Title     string                 `json:"title" validate:"max=300"`
	Questions []models.QuestionDraft `json:"questions" validate:"required,min=1"`
}

type AuthoringQuizResponse struct {
	QuizID    uint                   `json:"quizId"`
	PoetID    uint                   `json:"poetId"`
	Title     string                 `json:"title"`
	Questions []models.QuestionDraft `json:"questions"`
}

// ===== DRAFT <-> STORED TRANSFORMS =====

// DraftFromStored lifts a stored question into the editable shape: per-option
// correctness flags collapse into an explicit index (single) or index set
// (multiple). Storage identity is carried in the draft's client id.
func DraftFromStored(q *models.Question) models.QuestionDraft {
	d := models.QuestionDraft{
		ID:     fmt.Sprintf("%d", q.ID),
		Prompt: q.Prompt,
		Kind:   q.Kind,
	}

	switch q.Kind {
	case models.KindSingle, models.KindMultiple:
		d.Options = make([]models.OptionDraft, 0, len(q.Options))
		for _, opt := range q.Options {
			d.Options = append(d.Options, models.OptionDraft{Text: opt.Text})
		}
		idxs := q.CorrectIndexes()
		if q.Kind == models.KindMultiple {
			d.CorrectIndexes = idxs
		} else if len(idxs) > 0 {
			d.CorrectIndex = idxs[0]
		}

	case models.KindMatch:
		d.MatchPairs = make([]models.PairValue, 0, len(q.MatchPairs))
		for _, p := range q.MatchPairs {
			d.MatchPairs = append(d.MatchPairs, models.PairValue{Left: p.Left, Right: p.Right})
		}

	case models.KindText:
		if q.TextAnswer != nil {
			d.TextAnswer = q.TextAnswer.Answer
		}
	}

	return d
}

// StoredFromDraft lowers a draft back to the stored shape. The correct-index
// fields become per-option IsCorrect flags; position fields record the
// draft's ordering.
func StoredFromDraft(d *models.QuestionDraft, position int) models.Question {
	q := models.Question{
		Prompt:   d.Prompt,
		Kind:     d.Kind,
		Position: position,
	}

	switch d.Kind {
	case models.KindSingle:
		q.Options = make([]models.Option, 0, len(d.Options))
		for i, opt := range d.Options {
			q.Options = append(q.Options, models.Option{
				Text:      opt.Text,
				IsCorrect: i == d.CorrectIndex,
				Position:  i,
			})
		}

	case models.KindMultiple:
		correct := make(map[int]bool, len(d.CorrectIndexes))
		for _, idx := range d.CorrectIndexes {
			correct[idx] = true
		}
		q.Options = make([]models.Option, 0, len(d.Options))
		for i, opt := range d.Options {
			q.Options = append(q.Options, models.Option{
				Text:      opt.Text,
				IsCorrect: correct[i],
				Position:  i,
			})
		}

	case models.KindMatch:
		q.MatchPairs = make([]models.MatchPair, 0, len(d.MatchPairs))
		for i, p := range d.MatchPairs {
			q.MatchPairs = append(q.MatchPairs, models.MatchPair{
				Left:     p.Left,
				Right:    p.Right,
				Position: i,
			})
		}

	case models.KindText:
		q.TextAnswer = &models.TextAnswer{Answer: d.TextAnswer}
	}

	return q
}

// ===== SERVICE =====

type quizAuthoringService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewQuizAuthoringService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *utils.Validator) QuizAuthoringService {
	return &quizAuthoringService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *quizAuthoringService) GetForAuthoring(ctx context.Context, principal Principal, poetID uint) (*AuthoringQuizResponse, error) {
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

	return s.buildResponse(quiz), nil
}

func (s *quizAuthoringService) Save(ctx context.Context, principal Principal, poetID uint, req *SaveQuizRequest) (*AuthoringQuizResponse, error) {
	if principal.IsZero() {
		return nil, ErrUnauthorized
	}
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	s.logger.Info("Saving quiz", "poet_id", poetID, "editor_id", principal.UserID, "question_count", len(req.Questions))

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if errs := validateDrafts(req.Questions); len(errs) > 0 {
		return nil, errs
	}

	title := strings.TrimSpace(req.Title)
	quiz, err := s.findOrCreateQuiz(ctx, poetID, title)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = quiz.Title
	}

	questions := make([]models.Question, 0, len(req.Questions))
	for i := range req.Questions {
		questions = append(questions, StoredFromDraft(&req.Questions[i], i))
	}

	if err := s.repo.Quiz().ReplaceQuestions(ctx, quiz.ID, title, questions); err != nil {
		return nil, NewPersistenceError("quiz save", err)
	}
	quiz.Title = title

	s.publishSaved(ctx, quiz, poetID, principal.UserID, len(questions))

	return s.GetForAuthoring(ctx, principal, poetID)
}

// validateDrafts rejects the whole save when any question is incomplete;
// nothing is persisted in that case.
func validateDrafts(drafts []models.QuestionDraft) ValidationErrors {
	var errs ValidationErrors
	for i := range drafts {
		d := &drafts[i]
		if !d.Kind.Valid() {
			errs = append(errs, *NewValidationError(
				fmt.Sprintf("questions[%d].type", i), "unknown question type", string(d.Kind)))
			continue
		}
		if !d.IsComplete() {
			errs = append(errs, *NewValidationError(
				fmt.Sprintf("questions[%d]", i),
				fmt.Sprintf("%s question is incomplete", d.Kind.WireKind()), nil))
		}
	}
	return errs
}

func (s *quizAuthoringService) findOrCreateQuiz(ctx context.Context, poetID uint, title string) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByPoetID(ctx, poetID)
	if err == nil {
		return quiz, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, NewPersistenceError("quiz lookup", err)
	}

	poet, err := s.repo.Poet().GetByID(ctx, poetID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPoetNotFound
		}
		return nil, NewPersistenceError("poet lookup", err)
	}
	if title == "" {
		title = poet.Name
	}

	quiz = &models.Quiz{Title: title, PoetID: poetID}
	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, NewPersistenceError("quiz create", err)
	}
	return quiz, nil
}

func (s *quizAuthoringService) publishSaved(ctx context.Context, quiz *models.Quiz, poetID, editorID uint, questionCount int) {
	if s.publisher == nil {
		return
	}
	event := events.NewQuizEvent(events.EventQuizSaved, events.QuizSavedEvent{
		QuizID:        quiz.ID,
		PoetID:        poetID,
		QuizTitle:     quiz.Title,
		EditorID:      editorID,
		QuestionCount: questionCount,
	})
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz.saved event", "quiz_id", quiz.ID, "error", err)
	}
}

func (s *quizAuthoringService) buildResponse(quiz *models.Quiz) *AuthoringQuizResponse {
	drafts := make([]models.QuestionDraft, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		drafts = append(drafts, DraftFromStored(&quiz.Questions[i]))
	}
	return &AuthoringQuizResponse{
		QuizID:    quiz.ID,
		PoetID:    quiz.PoetID,
		Title:     quiz.Title,
		Questions: drafts,
	}
}
