package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/eremean89/poetry/internal/events"
	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/utils"
)

func newAuthoringService(repo *MockRepository, publisher events.EventPublisher) QuizAuthoringService {
	return NewQuizAuthoringService(repo, publisher, testLogger(), utils.NewValidator())
}

func adminPrincipal() Principal {
	return Principal{UserID: 1, Email: "editor@example.com", Role: models.RoleAdmin}
}

func TestDraftStoredRoundTrip(t *testing.T) {
	stored := []models.Question{
		*singleQuestion(1, 1),
		*multipleQuestion(2, 0, 3),
		*matchQuestion(3,
			models.PairValue{Left: "Парус", Right: "1832"},
			models.PairValue{Left: "Демон", Right: "1839"},
		),
		*textQuestion(4, "Тарханы"),
	}

	for i := range stored {
		q := &stored[i]
		draft := DraftFromStored(q)
		back := StoredFromDraft(&draft, q.Position)

		assert.Equal(t, q.Prompt, back.Prompt)
		assert.Equal(t, q.Kind, back.Kind)

		switch q.Kind {
		case models.KindSingle, models.KindMultiple:
			if assert.Len(t, back.Options, len(q.Options)) {
				for j := range q.Options {
					assert.Equal(t, q.Options[j].Text, back.Options[j].Text)
					assert.Equal(t, q.Options[j].IsCorrect, back.Options[j].IsCorrect,
						"option %d correctness must survive the round trip", j)
				}
			}
		case models.KindMatch:
			if assert.Len(t, back.MatchPairs, len(q.MatchPairs)) {
				for j := range q.MatchPairs {
					assert.Equal(t, q.MatchPairs[j].Left, back.MatchPairs[j].Left)
					assert.Equal(t, q.MatchPairs[j].Right, back.MatchPairs[j].Right)
				}
			}
		case models.KindText:
			if assert.NotNil(t, back.TextAnswer) {
				assert.Equal(t, q.TextAnswer.Answer, back.TextAnswer.Answer)
			}
		}
	}
}

func TestDraftFromStored_SingleCorrectIndex(t *testing.T) {
	draft := DraftFromStored(singleQuestion(1, 2))
	assert.Equal(t, 2, draft.CorrectIndex)
	assert.Empty(t, draft.CorrectIndexes)

	// no option flagged: the draft points at the first option
	draft = DraftFromStored(singleQuestion(1, -1))
	assert.Equal(t, 0, draft.CorrectIndex)
}

func validDraft() models.QuestionDraft {
	return models.QuestionDraft{
		Prompt: "Birth year?",
		Kind:   models.KindSingle,
		Options: []models.OptionDraft{
			{Text: "1799"}, {Text: "1814"},
		},
		CorrectIndex: 1,
	}
}

func TestQuizAuthoringService_Save(t *testing.T) {
	t.Run("replaces questions on existing quiz", func(t *testing.T) {
		repo := NewMockRepository()
		publisher := events.NewMockEventPublisher(testLogger())
		svc := newAuthoringService(repo, publisher)

		existing := &models.Quiz{ID: 10, Title: "Old title", PoetID: 5}
		repo.quiz.On("GetByPoetID", mock.Anything, uint(5)).Return(existing, nil)
		repo.quiz.On("ReplaceQuestions", mock.Anything, uint(10), "New title", mock.MatchedBy(func(qs []models.Question) bool {
			return len(qs) == 1 && qs[0].Kind == models.KindSingle && qs[0].Options[1].IsCorrect
		})).Return(nil)
		repo.quiz.On("GetByPoetIDWithDetails", mock.Anything, uint(5)).Return(&models.Quiz{
			ID:        10,
			Title:     "New title",
			PoetID:    5,
			Questions: []models.Question{*singleQuestion(1, 1)},
		}, nil)

		resp, err := svc.Save(context.Background(), adminPrincipal(), 5, &SaveQuizRequest{
			Title:     "New title",
			Questions: []models.QuestionDraft{validDraft()},
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(10), resp.QuizID)
		assert.Len(t, resp.Questions, 1)

		published := publisher.GetPublishedEvents()
		if assert.Len(t, published, 1) {
			assert.Equal(t, events.EventQuizSaved, published[0].Type)
		}
		repo.quiz.AssertExpectations(t)
	})

	t.Run("creates quiz on first save for a poet", func(t *testing.T) {
		repo := NewMockRepository()
		svc := newAuthoringService(repo, events.NewMockEventPublisher(testLogger()))

		repo.quiz.On("GetByPoetID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
		repo.poet.On("GetByID", mock.Anything, uint(5)).Return(&models.Poet{ID: 5, Name: "Лермонтов"}, nil)
		repo.quiz.On("Create", mock.Anything, mock.AnythingOfType("*models.Quiz")).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Quiz).ID = 42
		}).Return(nil)
		repo.quiz.On("ReplaceQuestions", mock.Anything, uint(42), "Лермонтов", mock.Anything).Return(nil)
		repo.quiz.On("GetByPoetIDWithDetails", mock.Anything, uint(5)).Return(&models.Quiz{ID: 42, PoetID: 5, Title: "Лермонтов"}, nil)

		_, err := svc.Save(context.Background(), adminPrincipal(), 5, &SaveQuizRequest{
			Title:     "Лермонтов",
			Questions: []models.QuestionDraft{validDraft()},
		})

		assert.NoError(t, err)
		repo.quiz.AssertExpectations(t)
	})

	t.Run("rejects incomplete questions before any persistence", func(t *testing.T) {
		repo := NewMockRepository()
		svc := newAuthoringService(repo, nil)

		incomplete := validDraft()
		incomplete.Options = incomplete.Options[:1] // below the two-option floor

		_, err := svc.Save(context.Background(), adminPrincipal(), 5, &SaveQuizRequest{
			Title:     "Title",
			Questions: []models.QuestionDraft{validDraft(), incomplete},
		})

		var verrs ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		if assert.Len(t, verrs, 1) {
			assert.Equal(t, "questions[1]", verrs[0].Field)
		}
		repo.quiz.AssertNotCalled(t, "ReplaceQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repo.quiz.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown question kind", func(t *testing.T) {
		repo := NewMockRepository()
		svc := newAuthoringService(repo, nil)

		bad := validDraft()
		bad.Kind = models.QuestionKind("ESSAY")

		_, err := svc.Save(context.Background(), adminPrincipal(), 5, &SaveQuizRequest{
			Title:     "Title",
			Questions: []models.QuestionDraft{bad},
		})

		var verrs ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("requires the admin role", func(t *testing.T) {
		svc := newAuthoringService(NewMockRepository(), nil)

		reader := Principal{UserID: 2, Role: models.RoleUser}
		_, err := svc.Save(context.Background(), reader, 5, &SaveQuizRequest{})
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = svc.Save(context.Background(), Principal{}, 5, &SaveQuizRequest{})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown poet", func(t *testing.T) {
		repo := NewMockRepository()
		svc := newAuthoringService(repo, nil)

		repo.quiz.On("GetByPoetID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
		repo.poet.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Save(context.Background(), adminPrincipal(), 99, &SaveQuizRequest{
			Title:     "Title",
			Questions: []models.QuestionDraft{validDraft()},
		})
		assert.ErrorIs(t, err, ErrPoetNotFound)
	})
}

func TestQuizAuthoringService_GetForAuthoring(t *testing.T) {
	t.Run("returns drafts with correctness lifted", func(t *testing.T) {
		repo := NewMockRepository()
		svc := newAuthoringService(repo, nil)

		repo.quiz.On("GetByPoetIDWithDetails", mock.Anything, uint(5)).Return(&models.Quiz{
			ID:     10,
			Title:  "Пушкин",
			PoetID: 5,
			Questions: []models.Question{
				*multipleQuestion(1, 1, 3),
			},
		}, nil)

		resp, err := svc.GetForAuthoring(context.Background(), adminPrincipal(), 5)
		assert.NoError(t, err)
		if assert.Len(t, resp.Questions, 1) {
			assert.Equal(t, []int{1, 3}, resp.Questions[0].CorrectIndexes)
		}
	})

	t.Run("quiz not found", func(t *testing.T) {
		repo := NewMockRepository()
		svc := newAuthoringService(repo, nil)

		repo.quiz.On("GetByPoetIDWithDetails", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetForAuthoring(context.Background(), adminPrincipal(), 5)
		assert.ErrorIs(t, err, ErrQuizNotFound)
	})

	t.Run("forbidden for non-admins", func(t *testing.T) {
		svc := newAuthoringService(NewMockRepository(), nil)

		_, err := svc.GetForAuthoring(context.Background(), Principal{UserID: 2, Role: models.RoleUser}, 5)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
