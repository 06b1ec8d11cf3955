package middleware

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/eremean89/poetry/internal/config"
	"github.com/eremean89/poetry/internal/models"
	"github.com/eremean89/poetry/internal/repositories"
	"github.com/eremean89/poetry/internal/services"
	"github.com/eremean89/poetry/internal/utils"
)

const principalKey = "principal"

// Authenticator validates Casdoor-issued JWTs and resolves them to local
// user accounts.
type Authenticator struct {
	client *casdoorsdk.Client
	repo   repositories.Repository
	logger utils.Logger
}

func NewAuthenticator(cfg config.CasdoorConfig, repo repositories.Repository, logger utils.Logger) *Authenticator {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.Organization,
		cfg.Application,
	)
	return &Authenticator{client: client, repo: repo, logger: logger}
}

// RequireAuth aborts with 401 unless the request carries a valid bearer
// token that maps to a known local user. The resolved principal is stored in
// the Gin context for handlers to pass into services.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := a.client.ParseJwtToken(parts[1])
		if err != nil {
			a.logger.Warn("Token validation failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user, err := a.repo.User().GetByEmail(c.Request.Context(), claims.User.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found for this token"})
			return
		}

		c.Set(principalKey, services.Principal{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		})
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated principal has the
// admin role. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the request's principal, zero when unauthenticated.
func GetPrincipal(c *gin.Context) services.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(services.Principal); ok {
			return p
		}
	}
	return services.Principal{}
}
