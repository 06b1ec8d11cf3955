package services

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/eremean89/poetry/internal/events"
	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/repositories"
	"github.com/eremean89/poetry/internal/utils"
)

// QuizTakingService is the learner-facing quiz surface: fetch the sanitized
// question set, grade a submission, and read back past results.
type QuizTakingService interface {
	GetForTaking(ctx context.Context, principal Principal, poetID uint) (*TakeQuizResponse, error)
	Submit(ctx context.Context, principal Principal, poetID uint, req *SubmitQuizRequest) (*QuizReport, error)
	GetHistory(ctx context.Context, principal Principal, filters repositories.ResultFilters) (*ResultHistoryResponse, error)
}

// TakeOption is an answer option with its correctness flag stripped.
type TakeOption struct {
	Text string `json:"text"`
}

// GradableQuestion is the sanitized question shape served to takers. Choice
// correctness flags and the reference text answer are withheld; match pairs
// are included whole since both columns are needed to render the question.
type GradableQuestion struct {
	ID         uint               `json:"id"`
	Prompt     string             `json:"question"`
	Kind       string             `json:"type"`
	Options    []TakeOption       `json:"options,omitempty"`
	MatchPairs []models.PairValue `json:"matchPairs,omitempty"`
}

type TakeQuizResponse struct {
	QuizID    uint               `json:"quizId"`
	PoetID    uint               `json:"poetId"`
	Title     string             `json:"title"`
	Questions []GradableQuestion `json:"questions"`
}

type SubmitQuizRequest struct {
	// Answers is keyed by the question id in decimal form. Questions with no
	// entry are graded incorrect, so an empty map is a valid submission.
	Answers         map[string]models.SubmittedAnswer `json:"answers"`
	DurationSeconds int                               `json:"duration" validate:"min=0"`
}

// CorrectAnswer discloses a question's reference answer in the report. The
// index and pair slices are always present, empty for kinds they do not
// apply to.
type CorrectAnswer struct {
	Kind           models.QuestionKind `json:"type"`
	CorrectIndexes []int               `json:"correctIndexes"`
	CorrectText    *string             `json:"correctText,omitempty"`
	CorrectPairs   []models.PairValue  `json:"correctPairs"`
}

type QuestionResult struct {
	QuestionID    uint          `json:"questionId"`
	IsCorrect     bool          `json:"isCorrect"`
	CorrectAnswer CorrectAnswer `json:"correctAnswer"`
}

type QuizReport struct {
	Score        int              `json:"score"`
	Total        int              `json:"total"`
	ScorePercent int              `json:"scorePercent"`
	Results      []QuestionResult `json:"detailedResults"`
}

type ResultHistoryResponse struct {
	Results []*models.QuizResult `json:"results"`
	Total   int64                `json:"total"`
}

// ===== GRADING TRANSFORM =====

// SanitizeQuestion strips grading material from a stored question.
func SanitizeQuestion(q *models.Question) GradableQuestion {
	g := GradableQuestion{
		ID:     q.ID,
		Prompt: q.Prompt,
		Kind:   q.Kind.WireKind(),
	}
	if len(q.Options) > 0 {
		g.Options = make([]TakeOption, 0, len(q.Options))
		for _, opt := range q.Options {
			g.Options = append(g.Options, TakeOption{Text: opt.Text})
		}
	}
	if len(q.MatchPairs) > 0 {
		g.MatchPairs = make([]models.PairValue, 0, len(q.MatchPairs))
		for _, p := range q.MatchPairs {
			g.MatchPairs = append(g.MatchPairs, models.PairValue{Left: p.Left, Right: p.Right})
		}
	}
	return g
}

// GradeQuestion scores one answer against its stored question. A missing
// answer or one whose kind does not match the question grades incorrect;
// grading never fails. The reference answer is disclosed either way.
func GradeQuestion(q *models.Question, ans *models.SubmittedAnswer) QuestionResult {
	result := QuestionResult{
		QuestionID:    q.ID,
		CorrectAnswer: discloseAnswer(q),
	}
	if ans == nil || ans.Kind != q.Kind {
		return result
	}

	switch q.Kind {
	case models.KindSingle:
		idxs := q.CorrectIndexes()
		result.IsCorrect = ans.SelectedIndex != nil && len(idxs) > 0 && *ans.SelectedIndex == idxs[0]

	case models.KindMultiple:
		result.IsCorrect = sameIndexSet(ans.SelectedIndexes, q.CorrectIndexes())

	case models.KindText:
		if q.TextAnswer != nil {
			result.IsCorrect = normalizeText(ans.Text) == normalizeText(q.TextAnswer.Answer)
		}

	case models.KindMatch:
		result.IsCorrect = pairsMatch(ans.Pairs, q.MatchPairs)
	}

	return result
}

func discloseAnswer(q *models.Question) CorrectAnswer {
	ca := CorrectAnswer{
		Kind:           q.Kind,
		CorrectIndexes: []int{},
		CorrectPairs:   []models.PairValue{},
	}

	switch q.Kind {
	case models.KindSingle, models.KindMultiple:
		ca.CorrectIndexes = q.CorrectIndexes()
	case models.KindText:
		if q.TextAnswer != nil {
			text := q.TextAnswer.Answer
			ca.CorrectText = &text
		}
	case models.KindMatch:
		for _, p := range q.MatchPairs {
			ca.CorrectPairs = append(ca.CorrectPairs, models.PairValue{Left: p.Left, Right: p.Right})
		}
	}

	return ca
}

// sameIndexSet compares selections as sets: order does not matter,
// membership does.
func sameIndexSet(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[int]int, len(want))
	for _, idx := range want {
		seen[idx]++
	}
	for _, idx := range got {
		if seen[idx] == 0 {
			return false
		}
		seen[idx]--
	}
	return true
}

// normalizeText folds case and trims surrounding whitespace before
// comparison. Interior whitespace and punctuation stay significant.
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// pairsMatch requires every submitted pair to sit at the same position with
// the same left and right values as the stored pair.
func pairsMatch(got []models.PairValue, want []models.MatchPair) bool {
	if len(got) != len(want) {
		return false
	}
	for i, p := range want {
		if got[i].Left != p.Left || got[i].Right != p.Right {
			return false
		}
	}
	return true
}

// ===== SERVICE =====

type quizTakingService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewQuizTakingService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *utils.Validator) QuizTakingService {
	return &quizTakingService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *quizTakingService) GetForTaking(ctx context.Context, principal Principal, poetID uint) (*TakeQuizResponse, error) {
	if principal.IsZero() {
		return nil, ErrUnauthorized
	}

	quiz, err := s.loadQuiz(ctx, poetID)
	if err != nil {
		return nil, err
	}

	questions := make([]GradableQuestion, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		questions = append(questions, SanitizeQuestion(&quiz.Questions[i]))
	}

	return &TakeQuizResponse{
		QuizID:    quiz.ID,
		PoetID:    quiz.PoetID,
		Title:     quiz.Title,
		Questions: questions,
	}, nil
}

func (s *quizTakingService) Submit(ctx context.Context, principal Principal, poetID uint, req *SubmitQuizRequest) (*QuizReport, error) {
	if principal.IsZero() {
		return nil, ErrUnauthorized
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quiz, err := s.loadQuiz(ctx, poetID)
	if err != nil {
		return nil, err
	}

	report := gradeQuiz(quiz, req.Answers)

	result := &models.QuizResult{
		UserID:          principal.UserID,
		QuizID:          quiz.ID,
		ScorePercent:    report.ScorePercent,
		DurationSeconds: req.DurationSeconds,
	}
	if err := s.repo.Result().Create(ctx, result); err != nil {
		return nil, NewPersistenceError("result save", err)
	}

	s.logger.Info("Quiz graded",
		"quiz_id", quiz.ID,
		"user_id", principal.UserID,
		"score", report.Score,
		"total", report.Total)

	s.publishGraded(ctx, quiz, principal.UserID, report, req.DurationSeconds)

	return report, nil
}

func (s *quizTakingService) GetHistory(ctx context.Context, principal Principal, filters repositories.ResultFilters) (*ResultHistoryResponse, error) {
	if principal.IsZero() {
		return nil, ErrUnauthorized
	}

	results, total, err := s.repo.Result().GetByUser(ctx, principal.UserID, filters)
	if err != nil {
		return nil, NewPersistenceError("result history", err)
	}

	return &ResultHistoryResponse{Results: results, Total: total}, nil
}

func (s *quizTakingService) loadQuiz(ctx context.Context, poetID uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByPoetIDWithDetails(ctx, poetID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, NewPersistenceError("quiz load", err)
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrQuizEmpty
	}
	return quiz, nil
}

// gradeQuiz scores every stored question against the answer map. Questions
// the map has no entry for count toward the total and grade incorrect.
func gradeQuiz(quiz *models.Quiz, answers map[string]models.SubmittedAnswer) *QuizReport {
	total := len(quiz.Questions)
	results := make([]QuestionResult, 0, total)
	score := 0

	for i := range quiz.Questions {
		q := &quiz.Questions[i]

		var ans *models.SubmittedAnswer
		if a, ok := answers[strconv.FormatUint(uint64(q.ID), 10)]; ok {
			ans = &a
		}

		r := GradeQuestion(q, ans)
		if r.IsCorrect {
			score++
		}
		results = append(results, r)
	}

	return &QuizReport{
		Score:        score,
		Total:        total,
		ScorePercent: int(math.Round(float64(score) / float64(total) * 100)),
		Results:      results,
	}
}

func (s *quizTakingService) publishGraded(ctx context.Context, quiz *models.Quiz, userID uint, report *QuizReport, duration int) {
	if s.publisher == nil {
		return
	}
	event := events.NewQuizEvent(events.EventQuizGraded, events.QuizGradedEvent{
		QuizID:          quiz.ID,
		PoetID:          quiz.PoetID,
		UserID:          userID,
		Score:           report.Score,
		Total:           report.Total,
		ScorePercent:    report.ScorePercent,
		DurationSeconds: duration,
	})
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz.graded event", "quiz_id", quiz.ID, "error", err)
	}
}
