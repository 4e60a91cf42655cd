package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/merrickb/recipebox/internal/domain/user"
)

// Keep these interfaces small so tests can fake them easily.
type TokenHasher interface {
	HashToken(raw string) string
}

type TokenResolver interface {
	Resolve(ctx context.Context, tokenHash string) (user.User, error)
}

type AuthMiddleware struct {
	hasher   TokenHasher
	resolver TokenResolver
}

func NewAuthMiddleware(hasher TokenHasher, resolver TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{hasher: hasher, resolver: resolver}
}

// RequireAuth is the single authorization checkpoint: every protected
// handler takes the acting account from the context this sets, never from
// the request payload.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing or invalid Authorization header",
				},
			})
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing or invalid bearer token",
				},
			})
			return
		}

		tokenHash := m.hasher.HashToken(raw)

		u, err := m.resolver.Resolve(c.Request.Context(), tokenHash)
		if err != nil {
			// unknown, revoked and inactive all look the same to the caller
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Invalid or revoked token",
				},
			})
			return
		}

		// Stash useful bits of identity on the context
		c.Set(ctxUserIDKey, u.ID)
		c.Set(ctxEmailKey, u.Email)
		c.Set(ctxTokenHashKey, tokenHash)

		c.Next()
	}
}

// Optional helpers so handlers don't need to know the magic keys.

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

func TokenHashFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxTokenHashKey)
	if !ok {
		return "", false
	}
	hash, ok := v.(string)
	return hash, ok
}
