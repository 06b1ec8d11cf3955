package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/repositories"
)

// MockPoetRepository is a mock implementation of PoetRepository
type MockPoetRepository struct {
	mock.Mock
}

func (m *MockPoetRepository) List(ctx context.Context) ([]*models.Poet, error) {
	args := m.Called(ctx)
	if poets := args.Get(0); poets != nil {
		return poets.([]*models.Poet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPoetRepository) GetByID(ctx context.Context, id uint) (*models.Poet, error) {
	args := m.Called(ctx, id)
	if poet := args.Get(0); poet != nil {
		return poet.(*models.Poet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPoetRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.Poet, error) {
	args := m.Called(ctx, id)
	if poet := args.Get(0); poet != nil {
		return poet.(*models.Poet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPoetRepository) Search(ctx context.Context, query string, limit int) ([]*models.Poet, error) {
	args := m.Called(ctx, query, limit)
	if poets := args.Get(0); poets != nil {
		return poets.([]*models.Poet), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockWorkRepository is a mock implementation of WorkRepository
type MockWorkRepository struct {
	mock.Mock
}

func (m *MockWorkRepository) List(ctx context.Context) ([]*models.Work, error) {
	args := m.Called(ctx)
	if works := args.Get(0); works != nil {
		return works.([]*models.Work), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.Work, error) {
	args := m.Called(ctx, id)
	if work := args.Get(0); work != nil {
		return work.(*models.Work), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetByPoetID(ctx context.Context, poetID uint) (*models.Quiz, error) {
	args := m.Called(ctx, poetID)
	if quiz := args.Get(0); quiz != nil {
		return quiz.(*models.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepository) GetByPoetIDWithDetails(ctx context.Context, poetID uint) (*models.Quiz, error) {
	args := m.Called(ctx, poetID)
	if quiz := args.Get(0); quiz != nil {
		return quiz.(*models.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) ReplaceQuestions(ctx context.Context, quizID uint, title string, questions []models.Question) error {
	args := m.Called(ctx, quizID, title, questions)
	return args.Error(0)
}

// MockResultRepository is a mock implementation of ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) GetByUser(ctx context.Context, userID uint, filters repositories.ResultFilters) ([]*models.QuizResult, int64, error) {
	args := m.Called(ctx, userID, filters)
	if results := args.Get(0); results != nil {
		return results.([]*models.QuizResult), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

// MockRepository bundles the entity mocks behind the Repository interface
type MockRepository struct {
	poet   *MockPoetRepository
	work   *MockWorkRepository
	user   *MockUserRepository
	quiz   *MockQuizRepository
	result *MockResultRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		poet:   &MockPoetRepository{},
		work:   &MockWorkRepository{},
		user:   &MockUserRepository{},
		quiz:   &MockQuizRepository{},
		result: &MockResultRepository{},
	}
}

func (m *MockRepository) Poet() repositories.PoetRepository     { return m.poet }
func (m *MockRepository) Work() repositories.WorkRepository     { return m.work }
func (m *MockRepository) User() repositories.UserRepository     { return m.user }
func (m *MockRepository) Quiz() repositories.QuizRepository     { return m.quiz }
func (m *MockRepository) Result() repositories.ResultRepository { return m.result }
