package services

import "github.com/eremean89/poetry/internal/models"

// Principal identifies the authenticated caller. Handlers resolve it from the
// request token and pass it down explicitly; services never read auth state
// from anywhere else.
type Principal struct {
	UserID uint
	Email  string
	Role   models.UserRole
}

func (p Principal) IsZero() bool {
	return p.UserID == 0
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}
