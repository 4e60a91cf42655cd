package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/merrickb/recipebox/internal/auth"
	"github.com/merrickb/recipebox/internal/config"
	"github.com/merrickb/recipebox/internal/domain/user"
	"github.com/merrickb/recipebox/internal/http/middlewares"
	"github.com/merrickb/recipebox/internal/repo/postgres"
	"github.com/merrickb/recipebox/internal/security"
)

type UserStore interface {
	Create(ctx context.Context, email, passwordHash, name string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (user.User, error)
}

type TokenStore interface {
	Create(ctx context.Context, row postgres.AuthTokenRow) error
	Revoke(ctx context.Context, tokenHash string) error
}

type UsersHandler struct {
	users  UserStore
	tokens TokenStore
	auth   *auth.Manager
}

func NewUsersHandler(users UserStore, tokens TokenStore, authManager *auth.Manager) *UsersHandler {
	return &UsersHandler{
		users:  users,
		tokens: tokens,
		auth:   authManager,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateMeRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.users.Create(cctx, req.Email, hash, req.Name)

	if err != nil {
		// a duplicate address is a plain validation failure, same status as
		// a malformed payload
		if errors.Is(err, user.ErrEmailAlreadyUsed) {
			RespondError(ctx, http.StatusBadRequest, "email_taken", "Email is already in use.", nil)
			return
		}

		if errors.Is(err, user.ErrEmailRequired) {
			RespondBadRequest(ctx, "Email is required.", nil)
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	})
}

func (h *UsersHandler) CreateToken(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, user.NormalizeEmail(req.Email))

	// not found, inactive and bad password all collapse into one response so
	// the endpoint cannot be used to probe which accounts exist
	if err != nil || !foundUser.IsActive {
		respondInvalidCredentials(ctx)
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		respondInvalidCredentials(ctx)
		return
	}

	raw, err := h.auth.GenerateToken()

	if err != nil {
		RespondInternal(ctx, "Could not create token")
		return
	}

	row := postgres.AuthTokenRow{
		ID:        uuid.NewString(),
		UserID:    foundUser.ID,
		TokenHash: h.auth.HashToken(raw),
		CreatedAt: time.Now().UTC(),
	}

	if err := h.tokens.Create(cctx, row); err != nil {
		RespondInternal(ctx, "Could not create token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": raw,
	})
}

// RevokeToken invalidates the token the request was authenticated with.
func (h *UsersHandler) RevokeToken(ctx *gin.Context) {
	tokenHash, ok := middlewares.TokenHashFromContext(ctx)

	if !ok || tokenHash == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if err := h.tokens.Revoke(cctx, tokenHash); err != nil {
		RespondInternal(ctx, "Could not revoke token")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *UsersHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not fetch profile")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"name":  u.Name,
		"email": u.Email,
	})
}

func (h *UsersHandler) UpdateMe(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req UpdateMeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	update := user.UpdateProfileRequest{
		Name: req.Name,
	}

	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password)

		if err != nil {
			RespondInternal(ctx, "Could not update profile")
			return
		}

		update.PasswordHash = &hash
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.UpdateProfile(cctx, userID, update)

	if err != nil {
		RespondInternal(ctx, "Could not update profile")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"name":  u.Name,
		"email": u.Email,
	})
}

func respondInvalidCredentials(ctx *gin.Context) {
	// 400, not 401: failing a login attempt is a rejected request body, the
	// caller holds no credentials yet to be unauthorized with
	RespondError(ctx, http.StatusBadRequest, "invalid_credentials", "Unable to authenticate with provided credentials.", nil)
}
