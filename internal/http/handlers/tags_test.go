package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/merrickb/recipebox/internal/domain/tag"
	"github.com/merrickb/recipebox/internal/domain/user"
	"github.com/merrickb/recipebox/internal/http/handlers"
	"github.com/merrickb/recipebox/internal/http/middlewares"
)

type fakeTagsRepo struct {
	createFn func(ctx context.Context, ownerID string, req tag.CreateTagRequest) (tag.Tag, error)
	listFn   func(ctx context.Context, ownerID string) ([]tag.Tag, error)
}

func (f *fakeTagsRepo) Create(ctx context.Context, ownerID string, req tag.CreateTagRequest) (tag.Tag, error) {
	if f.createFn != nil {
		return f.createFn(ctx, ownerID, req)
	}

	return tag.Tag{}, nil
}

func (f *fakeTagsRepo) ListByOwner(ctx context.Context, ownerID string) ([]tag.Tag, error) {
	if f.listFn != nil {
		return f.listFn(ctx, ownerID)
	}

	return []tag.Tag{}, nil
}

func tagsRouter(repo *fakeTagsRepo, accounts map[string]user.User) *gin.Engine {
	manager := testManager()

	resolver := &fakeResolver{
		resolveFn: func(ctx context.Context, tokenHash string) (user.User, error) {
			for raw, u := range accounts {
				if manager.HashToken(raw) == tokenHash {
					return u, nil
				}
			}
			return user.User{}, user.ErrNotFound
		},
	}

	h := handlers.NewTagsHandler(repo)
	mw := middlewares.NewAuthMiddleware(manager, resolver)

	r := gin.New()

	tags := r.Group("/tags", mw.RequireAuth())
	tags.GET("", h.ListTags)
	tags.POST("", h.CreateTag)

	return r
}

func TestTagsRequireAuth(t *testing.T) {
	r := tagsRouter(&fakeTagsRepo{}, twoUserAccounts())

	w := doJSON(t, r, http.MethodGet, "/tags", "", nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("list without token: got %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/tags", `{"name": "vegan"}`, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("create without token: got %d, want 401", w.Code)
	}
}

func TestCreateTagHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"name": "vegan"}`,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing_name",
			body:           `{}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "blank_name",
			body:           `{"name": ""}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			var captured tag.CreateTagRequest

			repo := &fakeTagsRepo{
				createFn: func(ctx context.Context, ownerID string, req tag.CreateTagRequest) (tag.Tag, error) {
					captured = req
					return tag.Tag{ID: 1, OwnerID: ownerID, Name: req.Name}, nil
				},
			}

			r := tagsRouter(repo, twoUserAccounts())

			w := doJSON(t, r, http.MethodPost, "/tags", tt.body, bearer("token-a"))

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusCreated && captured.Name != "vegan" {
				t.Fatalf("repo got name %q, want %q", captured.Name, "vegan")
			}
		})
	}
}

func TestListTagsScopedToCaller(t *testing.T) {
	var requestedOwner string

	repo := &fakeTagsRepo{
		listFn: func(ctx context.Context, ownerID string) ([]tag.Tag, error) {
			requestedOwner = ownerID
			return []tag.Tag{
				{ID: 2, OwnerID: ownerID, Name: "vegan"},
				{ID: 1, OwnerID: ownerID, Name: "dessert"},
			}, nil
		},
	}

	r := tagsRouter(repo, twoUserAccounts())

	w := doJSON(t, r, http.MethodGet, "/tags", "", bearer("token-b"))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	if requestedOwner != userB.ID {
		t.Fatalf("repo queried for owner %q, want %q", requestedOwner, userB.ID)
	}

	var resp struct {
		Items []tag.Tag `json:"items"`
		Count int       `json:"count"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Count != 2 || len(resp.Items) != 2 {
		t.Fatalf("got %d items, want 2: %s", len(resp.Items), w.Body.String())
	}

	// owner ids never leave the service
	if bytesContains(w.Body.Bytes(), userB.ID) {
		t.Fatalf("response leaks owner id: %s", w.Body.String())
	}
}
