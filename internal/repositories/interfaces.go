package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Repository aggregates the per-entity repositories behind one dependency.
type Repository interface {
	Poet() PoetRepository
	Work() WorkRepository
	User() UserRepository
	Quiz() QuizRepository
	Result() ResultRepository
}

// ===== SHARED FILTER STRUCTS =====

type ResultFilters struct {
	QuizID *uint `json:"quiz_id"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// IsNotFoundError reports whether err is the store's missing-record error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
