package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/merrickb/recipebox/internal/config"
	"github.com/merrickb/recipebox/internal/domain/recipe"
	"github.com/merrickb/recipebox/internal/http/middlewares"
)

type RecipeStore interface {
	Create(ctx context.Context, ownerID string, req recipe.CreateRecipeRequest) (recipe.Recipe, error)
	ListByOwner(ctx context.Context, ownerID string) ([]recipe.Recipe, error)
	GetByID(ctx context.Context, ownerID string, id int64) (recipe.Recipe, error)
	Update(ctx context.Context, ownerID string, id int64, req recipe.UpdateRecipeRequest) (recipe.Recipe, error)
	Replace(ctx context.Context, ownerID string, id int64, req recipe.CreateRecipeRequest) (recipe.Recipe, error)
	Delete(ctx context.Context, ownerID string, id int64) error
}

type RecipesHandler struct {
	repo RecipeStore
}

func NewRecipesHandler(repo RecipeStore) *RecipesHandler {
	return &RecipesHandler{repo: repo}
}

func (h *RecipesHandler) CreateRecipe(ctx *gin.Context) {
	ownerID, ok := ownerFrom(ctx)

	if !ok {
		return
	}

	var req recipe.CreateRecipeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rec, err := h.repo.Create(cctx, ownerID, req)

	if err != nil {
		RespondInternal(ctx, "Could not create recipe")
		return
	}

	ctx.JSON(http.StatusCreated, recipe.NewDetail(rec))
}

func (h *RecipesHandler) ListRecipes(ctx *gin.Context) {
	ownerID, ok := ownerFrom(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	recipes, err := h.repo.ListByOwner(cctx, ownerID)

	if err != nil {
		RespondInternal(ctx, "Could not list recipes")

		return
	}

	items := make([]recipe.Summary, 0, len(recipes))

	for _, rec := range recipes {
		items = append(items, recipe.NewSummary(rec))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *RecipesHandler) GetRecipeByID(ctx *gin.Context) {
	ownerID, ok := ownerFrom(ctx)

	if !ok {
		return
	}

	id, ok := recipeID(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rec, err := h.repo.GetByID(cctx, ownerID, id)

	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			RespondNotFound(ctx, "Recipe not found")
			return
		}
		RespondInternal(ctx, "Could not fetch recipe")
		return
	}

	ctx.JSON(http.StatusOK, recipe.NewDetail(rec))
}

func (h *RecipesHandler) UpdateRecipe(ctx *gin.Context) {
	ownerID, ok := ownerFrom(ctx)

	if !ok {
		return
	}

	id, ok := recipeID(ctx)

	if !ok {
		return
	}

	var req recipe.UpdateRecipeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rec, err := h.repo.Update(cctx, ownerID, id, req)

	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			RespondNotFound(ctx, "Recipe not found")
			return
		}
		RespondInternal(ctx, "Could not update recipe")
		return
	}

	ctx.JSON(http.StatusOK, recipe.NewDetail(rec))
}

func (h *RecipesHandler) ReplaceRecipe(ctx *gin.Context) {
	ownerID, ok := ownerFrom(ctx)

	if !ok {
		return
	}

	id, ok := recipeID(ctx)

	if !ok {
		return
	}

	var req recipe.CreateRecipeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rec, err := h.repo.Replace(cctx, ownerID, id, req)

	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			RespondNotFound(ctx, "Recipe not found")
			return
		}
		RespondInternal(ctx, "Could not update recipe")
		return
	}

	ctx.JSON(http.StatusOK, recipe.NewDetail(rec))
}

func (h *RecipesHandler) DeleteRecipe(ctx *gin.Context) {
	ownerID, ok := ownerFrom(ctx)

	if !ok {
		return
	}

	id, ok := recipeID(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, ownerID, id)

	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			RespondNotFound(ctx, "Recipe not found")
			return
		}
		RespondInternal(ctx, "Could not delete recipe")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ownerFrom pulls the acting account off the context set by RequireAuth.
// Handlers never accept an owner from the request itself.
func ownerFrom(ctx *gin.Context) (string, bool) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return "", false
	}

	return ownerID, true
}

// recipeID parses the path id. A malformed id behaves like a missing row,
// not a bad request.
func recipeID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id <= 0 {
		RespondNotFound(ctx, "Recipe not found")
		return 0, false
	}

	return id, true
}
