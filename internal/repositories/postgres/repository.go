package postgres

import (
	"github.com/eremean89/poetry/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	poet   repositories.PoetRepository
	work   repositories.WorkRepository
	user   repositories.UserRepository
	quiz   repositories.QuizRepository
	result repositories.ResultRepository
}

// NewRepository wires all PostgreSQL-backed repositories over one gorm.DB.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		poet:   NewPoetPostgreSQL(db),
		work:   NewWorkPostgreSQL(db),
		user:   NewUserPostgreSQL(db),
		quiz:   NewQuizPostgreSQL(db),
		result: NewResultPostgreSQL(db),
	}
}

func (r *repository) Poet() repositories.PoetRepository     { return r.poet }
func (r *repository) Work() repositories.WorkRepository     { return r.work }
func (r *repository) User() repositories.UserRepository     { return r.user }
func (r *repository) Quiz() repositories.QuizRepository     { return r.quiz }
func (r *repository) Result() repositories.ResultRepository { return r.result }
