package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/merrickb/recipebox/internal/auth"
	"github.com/merrickb/recipebox/internal/domain/user"
	"github.com/merrickb/recipebox/internal/http/middlewares"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, tokenHash string) (user.User, error)
}

func (s *stubResolver) Resolve(ctx context.Context, tokenHash string) (user.User, error) {
	return s.resolveFn(ctx, tokenHash)
}

func authTestRouter(resolver middlewares.TokenResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)

	mw := middlewares.NewAuthMiddleware(auth.NewManager("test-secret"), resolver)

	r := gin.New()
	r.GET("/whoami", mw.RequireAuth(), func(c *gin.Context) {
		id, _ := middlewares.UserIDFromContext(c)
		email, _ := middlewares.EmailFromContext(c)
		hash, _ := middlewares.TokenHashFromContext(c)

		c.JSON(http.StatusOK, gin.H{"id": id, "email": email, "hash": hash})
	})

	return r
}

func TestRequireAuthRejectsBadHeaders(t *testing.T) {
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, tokenHash string) (user.User, error) {
			t.Fatal("resolver should not be reached")
			return user.User{}, nil
		},
	}

	r := authTestRouter(resolver)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing_header", header: ""},
		{name: "wrong_scheme", header: "Basic abc123"},
		{name: "bare_bearer", header: "Bearer "},
		{name: "lowercase_scheme", header: "bearer sometoken"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("got status %d, want 401, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestRequireAuthRejectsUnknownToken(t *testing.T) {
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, tokenHash string) (user.User, error) {
			return user.User{}, user.ErrNotFound
		},
	}

	r := authTestRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer does-not-exist")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401, body=%s", w.Code, w.Body.String())
	}
}

func TestRequireAuthSetsIdentity(t *testing.T) {
	manager := auth.NewManager("test-secret")

	const raw = "raw-bearer-token"
	wantHash := manager.HashToken(raw)

	var resolvedHash string

	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, tokenHash string) (user.User, error) {
			resolvedHash = tokenHash
			return user.User{ID: "user-1", Email: "user@test.com", IsActive: true}, nil
		},
	}

	r := authTestRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	if resolvedHash != wantHash {
		t.Fatalf("resolver saw hash %q, want the HMAC of the raw token %q", resolvedHash, wantHash)
	}

	body := w.Body.String()

	for _, want := range []string{`"id":"user-1"`, `"email":"user@test.com"`, `"hash":"` + wantHash + `"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("response missing %s: %s", want, body)
		}
	}
}
