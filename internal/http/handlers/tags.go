package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/merrickb/recipebox/internal/config"
	"github.com/merrickb/recipebox/internal/domain/tag"
)

type TagStore interface {
	Create(ctx context.Context, ownerID string, req tag.CreateTagRequest) (tag.Tag, error)
	ListByOwner(ctx context.Context, ownerID string) ([]tag.Tag, error)
}

type TagsHandler struct {
	repo TagStore
}

func NewTagsHandler(repo TagStore) *TagsHandler {
	return &TagsHandler{repo: repo}
}

func (h *TagsHandler) CreateTag(ctx *gin.Context) {
	ownerID, ok := ownerFrom(ctx)

	if !ok {
		return
	}

	var req tag.CreateTagRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	t, err := h.repo.Create(cctx, ownerID, req)

	if err != nil {
		RespondInternal(ctx, "Could not create tag")
		return
	}

	ctx.JSON(http.StatusCreated, t)
}

func (h *TagsHandler) ListTags(ctx *gin.Context) {
	ownerID, ok := ownerFrom(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	tags, err := h.repo.ListByOwner(cctx, ownerID)

	if err != nil {
		RespondInternal(ctx, "Could not list tags")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": tags,
		"count": len(tags),
	})
}
